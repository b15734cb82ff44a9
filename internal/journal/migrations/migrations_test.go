package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	// Verify tables were created
	tables := []string{"sync_runs", "copied_files", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s was not created: %v", table, err)
		}
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first MigrateUp() failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second MigrateUp() failed: %v", err)
	}
}

func TestCheckJournalMigrationStatus_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	err := CheckJournalMigrationStatus(db)
	if err == nil {
		t.Error("CheckJournalMigrationStatus() expected error for fresh database, got nil")
	}

	if err.Error() != "journal has no schema version (needs migration)" {
		t.Errorf("CheckJournalMigrationStatus() error = %q, want error about needing migration", err.Error())
	}
}

func TestCheckJournalMigrationStatus_AfterMigration(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	if err := CheckJournalMigrationStatus(db); err != nil {
		t.Errorf("CheckJournalMigrationStatus() error = %v, want nil", err)
	}
}
