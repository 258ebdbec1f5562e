package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVStore persists history as a two-column CSV file with a header row.
// The whole file is loaded at construction and rewritten on every append
// through a temp file and rename, so a crash mid-write leaves the previous
// state intact.
type CSVStore struct {
	path    string
	records []Record
	guids   map[string]struct{}
}

func NewCSVStore(path string) (*CSVStore, error) {
	store := &CSVStore{
		path:  path,
		guids: make(map[string]struct{}),
	}

	if err := store.load(); err != nil {
		return nil, fmt.Errorf("failed to load history from %s: %w", path, err)
	}

	return store, nil
}

// load reads the persisted records. A missing file is an empty history,
// not an error.
func (s *CSVStore) load() error {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	guidCol, urlCol := -1, -1
	for i, name := range rows[0] {
		switch name {
		case "guid":
			guidCol = i
		case "url":
			urlCol = i
		}
	}
	if guidCol < 0 || urlCol < 0 {
		return fmt.Errorf("header row %v is missing guid/url columns", rows[0])
	}

	for _, row := range rows[1:] {
		record := Record{GUID: row[guidCol], URL: row[urlCol]}
		if _, seen := s.guids[record.GUID]; seen {
			continue
		}
		s.records = append(s.records, record)
		s.guids[record.GUID] = struct{}{}
	}

	return nil
}

func (s *CSVStore) Contains(guid string) bool {
	_, ok := s.guids[guid]
	return ok
}

func (s *CSVStore) Len() int {
	return len(s.records)
}

// Append records a published entry and persists the full set before
// returning. Appending a GUID that is already present is a no-op.
func (s *CSVStore) Append(record Record) error {
	if s.Contains(record.GUID) {
		return nil
	}

	records := append(s.records, record)
	if err := s.write(records); err != nil {
		return fmt.Errorf("failed to persist history to %s: %w", s.path, err)
	}

	s.records = records
	s.guids[record.GUID] = struct{}{}

	return nil
}

// write replaces the history file atomically: full contents go to a temp
// file in the same directory, which is then renamed over the original.
func (s *CSVStore) write(records []Record) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".history-*.csv")
	if err != nil {
		return err
	}

	writer := csv.NewWriter(tmp)
	err = writer.Write([]string{"guid", "url"})
	for _, record := range records {
		if err != nil {
			break
		}
		err = writer.Write([]string{record.GUID, record.URL})
	}
	if err == nil {
		writer.Flush()
		err = writer.Error()
	}
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}
