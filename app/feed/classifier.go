package feed

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnclassified marks an entry whose URL matches no known category.
var ErrUnclassified = errors.New("entry matches no known category")

// Classify derives the category from the entry's URL path. The checks are
// independent: a URL that somehow contained more than one marker would end
// up with the last matching check. Beehive URLs carry exactly one.
func Classify(entry Entry) (Category, error) {
	var category Category
	matched := false

	if strings.Contains(entry.Link, "/feature/") {
		category = CategoryFeature
		matched = true
	}
	if strings.Contains(entry.Link, "/release/") {
		category = CategoryRelease
		matched = true
	}
	if strings.Contains(entry.Link, "/speech/") {
		category = CategorySpeech
		matched = true
	}

	if !matched {
		return 0, fmt.Errorf("%w: %s", ErrUnclassified, entry.Link)
	}

	return category, nil
}
