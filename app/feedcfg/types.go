package feedcfg

import (
	"time"
)

// Definition describes the monitored feed.
type Definition struct {
	URL        string
	StartTime  time.Time // entries published before this are never posted
	SkipNewest int       // non-chronological entries fronting the feed
}

// fileConfig mirrors the YAML document.
type fileConfig struct {
	URL        string `yaml:"url"`
	StartTime  string `yaml:"start_time"`
	SkipNewest *int   `yaml:"skip_newest"`
}
