package gapsync

import "gapsync-go/internal/model"

// Journal provides an interface for recording sync history.
// It is write-mostly: the sync algorithm never consults it. The
// filesystem existence check is the sole copy criterion.
type Journal interface {
	// CreateSyncRun records the start of a filesystem-mutating operation.
	CreateSyncRun(operation, parameters string) (*model.SyncRun, error)

	// FinishSyncRun finalizes a run with its outcome and copy count.
	FinishSyncRun(id int64, status string, filesCopied int64) error

	// RecordCopiedFile records a single completed copy action.
	// The record's ID is assigned by the journal.
	RecordCopiedFile(rec *model.CopiedFile) error

	// ListSyncRuns returns the most recent runs, newest first.
	ListSyncRuns(limit int) ([]*model.SyncRun, error)

	// ListCopiedFiles returns the copies recorded for a run, oldest first.
	ListCopiedFiles(runID int64) ([]*model.CopiedFile, error)

	// CheckMigrations verifies that the journal schema is up to date.
	CheckMigrations() error

	// Close releases the underlying storage.
	Close() error
}
