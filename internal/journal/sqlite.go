package journal

import (
	"database/sql"
	"fmt"
	"time"

	"gapsync-go/internal/gapsync"
	"gapsync-go/internal/journal/migrations"
	"gapsync-go/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements the Journal interface using SQLite.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

// NewSQLiteJournal opens (or creates) a journal at the given path and
// applies any pending migrations.
// path can be a file path or ":memory:" for an in-memory journal.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}

	return &SQLiteJournal{db: db, path: path}, nil
}

// NewSQLiteJournalFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly
// configured and the schema is applied.
func NewSQLiteJournalFromDB(db *sql.DB) *SQLiteJournal {
	return &SQLiteJournal{db: db, path: ""}
}

// OpenConnection opens and configures a SQLite connection with appropriate PRAGMAs.
// This is exported for use in tools and tests that need a properly configured
// SQLite connection. path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// PRAGMAs apply per connection, and ":memory:" databases are per
	// connection too. A single connection keeps both correct.
	db.SetMaxOpenConns(1)

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

func (j *SQLiteJournal) CreateSyncRun(operation, parameters string) (*model.SyncRun, error) {
	startedAt := time.Now().UTC()
	res, err := j.db.Exec(
		`INSERT INTO sync_runs (operation, parameters, started_at, status) VALUES (?, ?, ?, 'running')`,
		operation, parameters, startedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting sync run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading sync run id: %w", err)
	}

	return &model.SyncRun{
		ID:         id,
		Operation:  operation,
		Parameters: parameters,
		StartedAt:  startedAt,
		Status:     "running",
	}, nil
}

func (j *SQLiteJournal) FinishSyncRun(id int64, status string, filesCopied int64) error {
	_, err := j.db.Exec(
		`UPDATE sync_runs SET finished_at = ?, status = ?, files_copied = ? WHERE id = ?`,
		time.Now().UTC(), status, filesCopied, id,
	)
	if err != nil {
		return fmt.Errorf("finishing sync run: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) RecordCopiedFile(rec *model.CopiedFile) error {
	res, err := j.db.Exec(
		`INSERT INTO copied_files (sync_run_id, pair_name, source_path, dest_path, size, copied_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SyncRunID, rec.PairName, rec.SourcePath, rec.DestPath, rec.Size, rec.CopiedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting copied file: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading copied file id: %w", err)
	}
	rec.ID = id
	return nil
}

func (j *SQLiteJournal) ListSyncRuns(limit int) ([]*model.SyncRun, error) {
	rows, err := j.db.Query(
		`SELECT id, operation, parameters, started_at, finished_at, status, files_copied
		 FROM sync_runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.SyncRun
	for rows.Next() {
		var run model.SyncRun
		if err := rows.Scan(&run.ID, &run.Operation, &run.Parameters, &run.StartedAt,
			&run.FinishedAt, &run.Status, &run.FilesCopied); err != nil {
			return nil, fmt.Errorf("scanning sync run: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading sync runs: %w", err)
	}
	return runs, nil
}

func (j *SQLiteJournal) ListCopiedFiles(runID int64) ([]*model.CopiedFile, error) {
	rows, err := j.db.Query(
		`SELECT id, sync_run_id, pair_name, source_path, dest_path, size, copied_at
		 FROM copied_files WHERE sync_run_id = ? ORDER BY id ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying copied files: %w", err)
	}
	defer rows.Close()

	var files []*model.CopiedFile
	for rows.Next() {
		var f model.CopiedFile
		if err := rows.Scan(&f.ID, &f.SyncRunID, &f.PairName, &f.SourcePath,
			&f.DestPath, &f.Size, &f.CopiedAt); err != nil {
			return nil, fmt.Errorf("scanning copied file: %w", err)
		}
		files = append(files, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading copied files: %w", err)
	}
	return files, nil
}

// CheckMigrations verifies that the journal schema is at the latest version.
func (j *SQLiteJournal) CheckMigrations() error {
	return migrations.CheckJournalMigrationStatus(j.db)
}

// Close closes the underlying database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Compile-time check that SQLiteJournal implements gapsync.Journal
var _ gapsync.Journal = (*SQLiteJournal)(nil)
