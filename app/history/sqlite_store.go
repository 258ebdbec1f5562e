package history

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists history in a single-table SQLite database. Suited
// to deployments where rewriting a growing CSV on every publish gets
// wasteful; both stores carry the same guid/url shape.
type SQLiteStore struct {
	db    *sql.DB
	guids map[string]struct{}
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS history (
		guid TEXT PRIMARY KEY,
		url  TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	store := &SQLiteStore{
		db:    db,
		guids: make(map[string]struct{}),
	}

	if err := store.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) load() error {
	rows, err := s.db.Query("SELECT guid FROM history")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var guid string
		if err := rows.Scan(&guid); err != nil {
			return err
		}
		s.guids[guid] = struct{}{}
	}

	return rows.Err()
}

func (s *SQLiteStore) Contains(guid string) bool {
	_, ok := s.guids[guid]
	return ok
}

func (s *SQLiteStore) Len() int {
	return len(s.guids)
}

func (s *SQLiteStore) Append(record Record) error {
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO history (guid, url) VALUES (?, ?)",
		record.GUID, record.URL,
	); err != nil {
		return fmt.Errorf("failed to persist history record: %w", err)
	}

	s.guids[record.GUID] = struct{}{}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
