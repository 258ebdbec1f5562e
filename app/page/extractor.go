package page

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrStructureMismatch marks a page missing the DOM anchors the extractor
// depends on. The entry is skipped and retried on a later run, on the
// assumption the page (or the site template) will settle.
var ErrStructureMismatch = errors.New("page structure does not match expected layout")

// Metadata is what a single Beehive article page yields. Portfolios are
// collected when present but nothing downstream consumes them yet; mapping
// ministers to their portfolios needs more work than a flat list.
type Metadata struct {
	Title       string
	Description string
	Ministers   []string
	Portfolios  []string
}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Run(data []byte) (*Metadata, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("HTML data is empty")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title, err := e.extractTitle(doc)
	if err != nil {
		return nil, err
	}

	description, err := e.extractDescription(doc)
	if err != nil {
		return nil, err
	}

	metadata := &Metadata{
		Title:       title,
		Description: description,
	}

	// Repeated mentions produce repeated names; ordering follows the page.
	doc.Find("div.minister__title").Each(func(_ int, sel *goquery.Selection) {
		metadata.Ministers = append(metadata.Ministers, strings.TrimSpace(sel.Text()))
	})

	doc.Find("div.taxonomy-term--type-portfolios").Each(func(_ int, sel *goquery.Selection) {
		metadata.Portfolios = append(metadata.Portfolios, strings.TrimSpace(sel.Text()))
	})

	slog.Debug("Page metadata extracted",
		"title", metadata.Title,
		"ministers", len(metadata.Ministers))

	return metadata, nil
}

// extractTitle prefers the Open Graph title and falls back to the article
// heading. Both anchors missing outright means the page template changed.
func (e *Extractor) extractTitle(doc *goquery.Document) (string, error) {
	ogTitle := doc.Find(`meta[property="og:title"]`)
	heading := doc.Find("h1.article__title")

	if ogTitle.Length() == 0 && heading.Length() == 0 {
		return "", fmt.Errorf("%w: no og:title meta and no article heading", ErrStructureMismatch)
	}

	title := strings.TrimSpace(ogTitle.AttrOr("content", ""))
	if title == "" {
		title = strings.TrimSpace(heading.First().Text())
	}

	return title, nil
}

// extractDescription prefers the Open Graph description and falls back to
// the standard meta description.
func (e *Extractor) extractDescription(doc *goquery.Document) (string, error) {
	ogDescription := doc.Find(`meta[property="og:description"]`)
	metaDescription := doc.Find(`meta[name="description"]`)

	if ogDescription.Length() == 0 && metaDescription.Length() == 0 {
		return "", fmt.Errorf("%w: no og:description meta and no description meta", ErrStructureMismatch)
	}

	description := strings.TrimSpace(ogDescription.AttrOr("content", ""))
	if description == "" {
		description = strings.TrimSpace(metaDescription.AttrOr("content", ""))
	}

	return description, nil
}
