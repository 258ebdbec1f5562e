package feedcfg

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultURL is the Beehive full press-release feed.
	DefaultURL = "https://www.beehive.govt.nz/rss.xml"

	startTimeLayout = "02 Jan 2006 15:04:05 -0700"

	// Bootstrap cutoff: when the feed was first monitored, anything older
	// than this had already been published elsewhere.
	defaultStartTime = "05 Apr 2025 00:00:01 +1300"

	// The feed fronts a few pinned, non-chronological entries.
	defaultSkipNewest = 3
)

// Loader handles loading and validation of the feed definition
type Loader struct {
	path string
}

// NewLoader creates a new feed definition loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the YAML feed definition. An empty path is not an error: the
// built-in Beehive defaults apply. A configured path that cannot be read is.
func (l *Loader) Load() (*Definition, error) {
	var raw fileConfig

	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read feed definition: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse feed definition: %w", err)
		}
	}

	l.setDefaults(&raw)

	def, err := l.build(&raw)
	if err != nil {
		return nil, fmt.Errorf("invalid feed definition: %w", err)
	}

	return def, nil
}

// setDefaults applies default values to the raw configuration
func (l *Loader) setDefaults(raw *fileConfig) {
	if raw.URL == "" {
		raw.URL = DefaultURL
	}
	if raw.StartTime == "" {
		raw.StartTime = defaultStartTime
	}
	if raw.SkipNewest == nil {
		skip := defaultSkipNewest
		raw.SkipNewest = &skip
	}
}

// build validates the raw configuration and resolves it into a Definition
func (l *Loader) build(raw *fileConfig) (*Definition, error) {
	startTime, err := time.Parse(startTimeLayout, raw.StartTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start_time %q: %w", raw.StartTime, err)
	}

	if *raw.SkipNewest < 0 {
		return nil, fmt.Errorf("skip_newest must be non-negative, got %d", *raw.SkipNewest)
	}

	return &Definition{
		URL:        raw.URL,
		StartTime:  startTime,
		SkipNewest: *raw.SkipNewest,
	}, nil
}
