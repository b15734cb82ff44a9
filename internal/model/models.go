package model

import (
	"database/sql"
	"time"
)

// SyncRun represents one CLI operation that mutated the filesystem.
// A run is created when the operation starts and finalized when the
// application shuts down.
type SyncRun struct {
	ID          int64
	Operation   string // CLI command being run (e.g. "Sync", "FixSnapshotNames")
	Parameters  string
	StartedAt   time.Time
	FinishedAt  sql.NullTime
	Status      string // "success" or "error"
	FilesCopied int64
}

// CopiedFile records a single copy action performed during a sync run.
type CopiedFile struct {
	ID         int64
	SyncRunID  int64
	PairName   string // empty for ad-hoc pairs given on the command line
	SourcePath string
	DestPath   string
	Size       int64
	CopiedAt   time.Time
}
