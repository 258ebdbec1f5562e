package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/marcus-crane/hivesky/app/bluesky"
	"github.com/marcus-crane/hivesky/app/cfg"
	"github.com/marcus-crane/hivesky/app/feedcfg"
	"github.com/marcus-crane/hivesky/app/history"
	"github.com/marcus-crane/hivesky/app/runner"
	"github.com/marcus-crane/hivesky/app/scraper"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting hivesky", "version", appCfg.Version, "live", appCfg.Post)

	definition, err := feedcfg.NewLoader(appCfg.FeedConfig).Load()
	if err != nil {
		log.Fatal("Failed to load feed definition: ", err)
	}

	store, closeStore, err := openHistory(appCfg)
	if err != nil {
		log.Fatal("Failed to open history store: ", err)
	}
	defer closeStore()

	client := scraper.NewClient(appCfg.ScrapeURL, appCfg.ScrapeToken, &http.Client{})

	publisher, err := buildPublisher(appCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	stats, err := runner.New(definition, appCfg.FeedFile, client, store, publisher).Run(context.Background())
	if err != nil {
		log.Fatal("Run failed: ", err)
	}

	slog.Info("Run completed",
		"seen", stats.Seen,
		"too_old", stats.TooOld,
		"already_published", stats.Duplicate,
		"skipped", stats.Skipped,
		"published", stats.Published)
}

func openHistory(appCfg *cfg.Cfg) (history.Store, func(), error) {
	if appCfg.HistoryDB != "" {
		store, err := history.NewSQLiteStore(appCfg.HistoryDB)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}

	store, err := history.NewCSVStore(appCfg.HistoryFile)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// buildPublisher picks the sink. Printing is the default; real posting has
// to be opted into explicitly.
func buildPublisher(appCfg *cfg.Cfg) (bluesky.Publisher, error) {
	if !appCfg.Post {
		return bluesky.NewConsolePublisher(os.Stdout), nil
	}

	imageData, err := os.ReadFile(appCfg.ImageFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read thumbnail image %s: %w", appCfg.ImageFile, err)
	}

	client := bluesky.NewClient(appCfg.BlueskyHost, &http.Client{})
	return bluesky.NewClientPublisher(client, appCfg.BlueskyHandle, appCfg.BlueskyPassword, imageData), nil
}
