package history

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}

	records := []Record{
		{GUID: "https://www.beehive.govt.nz/124729", URL: "https://www.beehive.govt.nz/release/one"},
		{GUID: "https://www.beehive.govt.nz/124730", URL: "https://www.beehive.govt.nz/speech/two"},
	}
	for _, record := range records {
		if err := store.Append(record); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reloaded, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reloaded.Close()

	if reloaded.Len() != len(records) {
		t.Fatalf("Expected %d records after reload, got %d", len(records), reloaded.Len())
	}
	for _, record := range records {
		if !reloaded.Contains(record.GUID) {
			t.Errorf("Expected reloaded store to contain %s", record.GUID)
		}
	}
}

func TestSQLiteStoreDuplicateAppendIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	record := Record{GUID: "guid-1", URL: "https://example.com/release/one"}
	if err := store.Append(record); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(record); err != nil {
		t.Fatal(err)
	}

	if store.Len() != 1 {
		t.Errorf("Expected 1 record after duplicate append, got %d", store.Len())
	}
}

func TestSQLiteStoreEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if store.Contains("anything") {
		t.Error("Fresh store should not contain any GUID")
	}
}
