package history

// Record is one published entry. The GUID drives deduplication; the URL is
// kept alongside so the history doubles as a readable publish log.
type Record struct {
	GUID string
	URL  string
}

// Store is the durable set of already-published GUIDs. Append must persist
// before returning: a crash right after a publish must not forget it.
type Store interface {
	Contains(guid string) bool
	Append(record Record) error
}
