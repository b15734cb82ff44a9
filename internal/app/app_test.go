package app

import (
	"os"
	"path/filepath"
	"testing"

	"gapsync-go/internal/config"
	"gapsync-go/internal/journal"
)

func newTestApp(t *testing.T, journalType string) (*App, *config.Config) {
	t.Helper()
	cfg := config.NewConfig("testhost", t.TempDir())
	cfg.Journal.Type = journalType

	a, err := NewApp(cfg, "Sync")
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return a, cfg
}

func TestApp_SyncPair_FailedPairMarksRunError(t *testing.T) {
	a, cfg := newTestApp(t, "sqlite")

	left := t.TempDir()
	right := t.TempDir()
	if err := os.WriteFile(filepath.Join(left, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := a.SyncPair(left, right, "good", nil, nil); err != nil {
		t.Fatalf("SyncPair() error = %v", err)
	}
	// Second pair fails its precondition after the first already
	// persisted the run.
	if _, err := a.SyncPair(filepath.Join(left, "missing"), right, "bad", nil, nil); err == nil {
		t.Fatal("SyncPair() expected error for missing left directory")
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	j, err := journal.NewSQLiteJournal(filepath.Join(cfg.Journal.DataDir, "testhost.db"))
	if err != nil {
		t.Fatalf("reopening journal: %v", err)
	}
	defer j.Close()

	runs, err := j.ListSyncRuns(10)
	if err != nil {
		t.Fatalf("ListSyncRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	if runs[0].Status != "error" {
		t.Errorf("run status = %q, want %q", runs[0].Status, "error")
	}
	if runs[0].FilesCopied != 1 {
		t.Errorf("FilesCopied = %d, want 1", runs[0].FilesCopied)
	}
}

func TestApp_SyncPair_PreconditionFailureSetsErrorStatus(t *testing.T) {
	a, _ := newTestApp(t, "memory")
	defer a.Close()

	left := t.TempDir()
	file := filepath.Join(left, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := a.SyncPair(left, file, "", nil, nil); err == nil {
		t.Fatal("SyncPair() expected error for file as right side")
	}
	if a.op.Status != "error" {
		t.Errorf("op.Status = %q, want %q", a.op.Status, "error")
	}
}

func TestApp_SetOperationParameters(t *testing.T) {
	a, _ := newTestApp(t, "memory")
	defer a.Close()

	left := t.TempDir()
	right := t.TempDir()

	a.SetOperationParameters("videos, music")
	if _, err := a.SyncPair(left, right, "videos", nil, nil); err != nil {
		t.Fatalf("SyncPair() error = %v", err)
	}

	runs, err := a.History(10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	if runs[0].Parameters != "videos, music" {
		t.Errorf("Parameters = %q, want %q", runs[0].Parameters, "videos, music")
	}

	// Once persisted the recorded parameters stay put.
	a.SetOperationParameters("changed")
	if a.op.Parameters != "videos, music" {
		t.Errorf("Parameters overwritten after persist: %q", a.op.Parameters)
	}
}
