package compose

import (
	"strings"

	"github.com/marcus-crane/hivesky/app/feed"
)

// MinisterList renders names as the trailing "from ..." clause:
//
//	1 name:  " from X"
//	2 names: " from X and Y"
//	3+:      " from X, Y and Z"
//
// An empty list renders nothing so the sentence reads cleanly without it.
func MinisterList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return " from " + names[0]
	case 2:
		return " from " + names[0] + " and " + names[1]
	default:
		return " from " + strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// PostBody composes the full post sentence for a classified entry.
// More than one minister makes it a "joint" publication.
func PostBody(category feed.Category, ministers []string) string {
	var b strings.Builder

	b.WriteString("A new ")
	if len(ministers) > 1 {
		b.WriteString("joint ")
	}
	b.WriteString(category.Word())
	b.WriteString(" is available")
	b.WriteString(MinisterList(ministers))
	b.WriteString(".")

	return b.String()
}
