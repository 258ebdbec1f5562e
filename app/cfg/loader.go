package cfg

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed source configuration
	FeedFile   string `long:"feed-file" env:"FEED_FILE" description:"Local RSS document to process instead of fetching the remote feed"`
	FeedConfig string `long:"feed-config" env:"FEED_CONFIG" description:"YAML feed definition file (built-in Beehive defaults used when absent)"`

	// Scrape service configuration
	ScrapeURL   string `long:"scrape-url" env:"BROWSERLESS_URL" description:"Browserless endpoint used for feed and page fetches"`
	ScrapeToken string `long:"scrape-token" env:"BROWSERLESS_API_TOKEN" description:"Browserless API token"`

	// Publishing configuration
	Post            bool   `long:"post" env:"POST_TO_BLUESKY" description:"Publish to Bluesky for real instead of printing posts"`
	BlueskyHost     string `long:"bluesky-host" env:"BLUESKY_HOST" default:"https://bsky.social" description:"Bluesky PDS host"`
	BlueskyHandle   string `long:"bluesky-handle" env:"BLUESKY_USERNAME" description:"Bluesky account handle (required with --post)"`
	BlueskyPassword string `long:"bluesky-password" env:"BLUESKY_PASSWORD" description:"Bluesky app password (required with --post)"`
	ImageFile       string `long:"image-file" env:"IMAGE_FILE" default:"beehive.png" description:"Thumbnail image attached to link previews"`

	// History configuration
	HistoryFile string `long:"history-file" env:"HISTORY_FILE" default:"history.csv" description:"CSV file recording already published entries"`
	HistoryDB   string `long:"history-db" env:"HISTORY_DB" description:"SQLite database for history (replaces the CSV file when set)"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedFile:        raw.FeedFile,
		FeedConfig:      raw.FeedConfig,
		ScrapeURL:       raw.ScrapeURL,
		ScrapeToken:     raw.ScrapeToken,
		Post:            raw.Post,
		BlueskyHost:     raw.BlueskyHost,
		BlueskyHandle:   raw.BlueskyHandle,
		BlueskyPassword: raw.BlueskyPassword,
		ImageFile:       raw.ImageFile,
		HistoryFile:     raw.HistoryFile,
		HistoryDB:       raw.HistoryDB,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	globalCfg = cfg

	return cfg, nil
}

// validate enforces the credentials the run will actually need. Page
// enrichment always goes through the scrape service, so its endpoint and
// token are required even when the feed document itself is a local file.
func validate(cfg *Cfg) error {
	if cfg.ScrapeURL == "" {
		return errors.New("please set BROWSERLESS_URL env var (or pass --scrape-url)")
	}
	if cfg.ScrapeToken == "" {
		return errors.New("please set BROWSERLESS_API_TOKEN env var (or pass --scrape-token)")
	}
	if cfg.Post {
		if cfg.BlueskyHandle == "" {
			return errors.New("live posting requires BLUESKY_USERNAME env var (or --bluesky-handle)")
		}
		if cfg.BlueskyPassword == "" {
			return errors.New("live posting requires BLUESKY_PASSWORD env var (or --bluesky-password)")
		}
	}
	return nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
