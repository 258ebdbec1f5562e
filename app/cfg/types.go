package cfg

type Cfg struct {
	// Feed source configuration
	FeedFile   string
	FeedConfig string

	// Scrape service configuration
	ScrapeURL   string
	ScrapeToken string

	// Publishing configuration
	Post            bool
	BlueskyHost     string
	BlueskyHandle   string
	BlueskyPassword string
	ImageFile       string

	// History configuration
	HistoryFile string
	HistoryDB   string

	// Application metadata
	Debug   bool
	Version string
}
