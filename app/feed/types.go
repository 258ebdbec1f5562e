package feed

import (
	"time"
)

// Category is the kind of Beehive publication an entry points at.
type Category int

const (
	CategoryRelease Category = iota
	CategorySpeech
	CategoryFeature
)

// Word returns the category as it appears in post text.
func (c Category) Word() string {
	switch c {
	case CategoryRelease:
		return "release"
	case CategorySpeech:
		return "speech"
	case CategoryFeature:
		return "feature"
	default:
		return "unknown"
	}
}

// Entry is a normalized feed item.
//
// GUIDs are shaped like https://www.beehive.govt.nz/124729 but to "visit"
// them the URL is https://www.beehive.govt.nz/node/124729, which resolves
// into the canonical URL. Some GUIDs appear to skip numbers: PDFs and other
// uploads that never show up in the feed are allocated node numbers too.
type Entry struct {
	GUID        string
	Link        string
	Title       string
	PublishedAt time.Time
}

// Post is a classified entry with its page-derived details resolved. It is
// built once, after enrichment, never mutated afterwards.
type Post struct {
	Category  Category
	GUID      string
	URL       string
	Title     string
	Ministers []string
}
