// Package testutil provides shared test helpers: a migrated history database
// and, in the documents subpackage, builders for handling documents.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/handling-analyzer/internal/storage"
)

// TestDB is a migrated history database scoped to one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a migrated SQLite database in the test's temp dir.
// It is closed automatically when the test finishes.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// MustSeed saves records or fails the test.
func (db *TestDB) MustSeed(records ...*storage.Record) {
	db.t.Helper()
	for _, record := range records {
		if err := db.Storage.SaveAnalysis(context.Background(), record); err != nil {
			db.t.Fatalf("failed to seed analysis %q: %v", record.ID, err)
		}
	}
}

// MustGet returns the stored analysis with id or fails the test.
func (db *TestDB) MustGet(id string) *storage.Record {
	db.t.Helper()
	record, err := db.Storage.GetAnalysis(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to load analysis %q: %v", id, err)
	}
	return record
}

// MustCount returns the number of stored analyses.
func (db *TestDB) MustCount() int {
	db.t.Helper()
	records, err := db.Storage.ListAnalyses(context.Background(), 1<<20)
	if err != nil {
		db.t.Fatalf("failed to list analyses: %v", err)
	}
	return len(records)
}
