package runner

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/marcus-crane/hivesky/app/bluesky"
	"github.com/marcus-crane/hivesky/app/compose"
	"github.com/marcus-crane/hivesky/app/feed"
	"github.com/marcus-crane/hivesky/app/feedcfg"
	"github.com/marcus-crane/hivesky/app/history"
	"github.com/marcus-crane/hivesky/app/page"
)

// Fetcher retrieves raw content (feed document or article page) through
// the scrape service.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Stats struct {
	Seen      int
	TooOld    int
	Duplicate int
	Skipped   int
	Published int
}

// Runner walks the feed once, strictly sequentially: each entry is fully
// classified, enriched, published and recorded before the next begins.
type Runner struct {
	definition *feedcfg.Definition
	feedFile   string
	fetcher    Fetcher
	parser     *feed.Parser
	extractor  *page.Extractor
	store      history.Store
	publisher  bluesky.Publisher
}

func New(definition *feedcfg.Definition, feedFile string, fetcher Fetcher, store history.Store, publisher bluesky.Publisher) *Runner {
	return &Runner{
		definition: definition,
		feedFile:   feedFile,
		fetcher:    fetcher,
		parser:     feed.NewParser(),
		extractor:  page.NewExtractor(),
		store:      store,
		publisher:  publisher,
	}
}

func (r *Runner) Run(ctx context.Context) (*Stats, error) {
	data, err := r.feedDocument(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	entries, err := r.parser.Run(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	// Drop the pinned entries fronting the feed, then walk oldest first.
	// Items are not strictly time ordered (backdating happens) so this is
	// best effort, not a sort.
	if r.definition.SkipNewest >= len(entries) {
		entries = nil
	} else {
		entries = entries[r.definition.SkipNewest:]
	}
	slices.Reverse(entries)

	stats := &Stats{}
	for _, entry := range entries {
		stats.Seen++

		if entry.PublishedAt.Before(r.definition.StartTime) {
			slog.Debug("Entry predates start time, skipping", "guid", entry.GUID)
			stats.TooOld++
			continue
		}

		// Already-published entries are filtered before any fetch.
		if r.store.Contains(entry.GUID) {
			stats.Duplicate++
			continue
		}

		if err := r.processEntry(ctx, entry, stats); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// processEntry handles a single new entry. Per-entry failures are logged
// and counted, not returned: the entry stays out of history so the next
// run retries it. Only a history persistence failure aborts the run.
func (r *Runner) processEntry(ctx context.Context, entry feed.Entry, stats *Stats) error {
	category, err := feed.Classify(entry)
	if err != nil {
		slog.Warn("No idea what this entry is, skipping", "url", entry.Link, "error", err)
		stats.Skipped++
		return nil
	}

	html, err := r.fetcher.Fetch(ctx, entry.Link)
	if err != nil {
		slog.Warn("Failed to fetch page, skipping", "url", entry.Link, "error", err)
		stats.Skipped++
		return nil
	}

	metadata, err := r.extractor.Run(html)
	if err != nil {
		slog.Warn("Failed to extract page metadata, skipping", "url", entry.Link, "error", err)
		stats.Skipped++
		return nil
	}

	post := feed.Post{
		Category:  category,
		GUID:      entry.GUID,
		URL:       entry.Link,
		Title:     cmp.Or(metadata.Title, entry.Title),
		Ministers: metadata.Ministers,
	}

	draft := bluesky.Draft{
		Text:             compose.PostBody(post.Category, post.Ministers),
		EmbedTitle:       post.Title,
		EmbedDescription: cmp.Or(metadata.Description, "Read more"),
		URL:              post.URL,
	}

	if err := r.publisher.Publish(ctx, draft); err != nil {
		slog.Warn("Failed to publish, will retry next run", "url", post.URL, "error", err)
		stats.Skipped++
		return nil
	}

	if err := r.store.Append(history.Record{GUID: post.GUID, URL: post.URL}); err != nil {
		return fmt.Errorf("failed to record published entry %s: %w", post.GUID, err)
	}

	slog.Info("Published", "category", post.Category.Word(), "url", post.URL)
	stats.Published++

	return nil
}

func (r *Runner) feedDocument(ctx context.Context) ([]byte, error) {
	if r.feedFile != "" {
		data, err := os.ReadFile(r.feedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read local feed %s: %w", r.feedFile, err)
		}
		return data, nil
	}
	return r.fetcher.Fetch(ctx, r.definition.URL)
}
