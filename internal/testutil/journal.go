package testutil

import (
	"testing"

	"gapsync-go/internal/gapsync"
	"gapsync-go/internal/journal"
)

// NewTestJournal creates a new in-memory SQLite journal with the schema applied.
// The journal is automatically closed when the test completes.
func NewTestJournal(t *testing.T) gapsync.Journal {
	t.Helper()

	db, err := journal.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}

	if _, err := db.Exec(journal.Schema); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	j := journal.NewSQLiteJournalFromDB(db)

	t.Cleanup(func() {
		j.Close()
	})

	return j
}
