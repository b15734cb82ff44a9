package app

import (
	"fmt"
	"os"
	"time"

	"gapsync-go/internal/config"
	"gapsync-go/internal/fs"
	"gapsync-go/internal/gapsync"
	"gapsync-go/internal/journal"
	"gapsync-go/internal/media"
	"gapsync-go/internal/model"
)

// App is the application layer between the CLI and the sync service.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and manages the journal lifecycle on Close.
type App struct {
	cfg     *config.Config
	journal gapsync.Journal
	fsys    *fs.OSFilesystem
	logger  gapsync.Logger
	service *gapsync.Service
	op      *SyncOperation
	copied  int64
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Sync", "FixSnapshotNames").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	fsys := fs.NewOSFilesystem()

	j, err := journal.NewJournalFromConfig(cfg.Journal, cfg.HostID)
	if err != nil {
		return nil, fmt.Errorf("creating journal: %w", err)
	}

	if err := j.CheckMigrations(); err != nil {
		j.Close()
		return nil, fmt.Errorf("journal schema out of date: %w", err)
	}

	policy := cfg.Sync.OnError
	if policy == "" {
		policy = gapsync.PolicyAbort
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	adapted := &slogAdapter{l: logger}
	svc, err := gapsync.NewService(j, fsys, adapted, gapsync.RealClock{}, policy)
	if err != nil {
		logFile.Close()
		j.Close()
		return nil, fmt.Errorf("creating sync service: %w", err)
	}

	return &App{
		cfg:     cfg,
		journal: j,
		fsys:    fsys,
		logger:  adapted,
		service: svc,
		op:      NewSyncOperation(operation, ""),
		logFile: logFile,
	}, nil
}

// Config returns the configuration the App was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// persistOperation saves the sync operation to the journal, giving it an
// auto-increment ID. This should only be called for mutating commands.
func (a *App) persistOperation() error {
	if a.op.Persisted() {
		return nil // already persisted
	}
	run, err := a.journal.CreateSyncRun(a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting sync operation: %w", err)
	}
	a.op.ID = run.ID
	return nil
}

// SyncPair reconciles one directory pair: files present on one side and
// absent on the other are copied over, in both directions. Nothing is
// ever deleted or overwritten. onCopy is invoked once per completed copy.
// Both paths are validated before the operation touches the filesystem
// or the journal. Any failure marks the operation as errored, so a
// multi-pair run where a later pair fails is not finalized as a success.
func (a *App) SyncPair(left, right, pairName string, ignore []string, onCopy func(src, dst string)) (*gapsync.Report, error) {
	report, err := a.syncPair(left, right, pairName, ignore, onCopy)
	if err != nil {
		a.op.Status = "error"
	}
	return report, err
}

func (a *App) syncPair(left, right, pairName string, ignore []string, onCopy func(src, dst string)) (*gapsync.Report, error) {
	leftPath, err := a.fsys.Resolve(left)
	if err != nil {
		return nil, fmt.Errorf("resolving left path: %w", err)
	}
	rightPath, err := a.fsys.Resolve(right)
	if err != nil {
		return nil, fmt.Errorf("resolving right path: %w", err)
	}
	if !leftPath.IsDir() {
		return nil, fmt.Errorf("left path is not a directory: %s", leftPath.String())
	}
	if !rightPath.IsDir() {
		return nil, fmt.Errorf("right path is not a directory: %s", rightPath.String())
	}

	if err := a.persistOperation(); err != nil {
		return nil, err
	}

	opts := gapsync.Options{
		PairName: pairName,
		RunID:    a.op.ID,
		OnCopy:   onCopy,
	}
	if len(ignore) > 0 {
		opts.Ignore = fs.NewIgnoreMatcher(ignore)
	}

	report, err := a.service.Sync(leftPath, rightPath, opts)
	if report != nil {
		a.copied += int64(len(report.Copies))
	}
	return report, err
}

// SetOperationParameters records what the operation acted on, shown by
// the history command. A no-op once the operation has been persisted.
func (a *App) SetOperationParameters(parameters string) {
	if !a.op.Persisted() {
		a.op.Parameters = parameters
	}
}

// History returns the most recent sync runs, newest first.
func (a *App) History(limit int) ([]*model.SyncRun, error) {
	return a.journal.ListSyncRuns(limit)
}

// RunCopies returns the files copied during a specific run, oldest first.
func (a *App) RunCopies(runID int64) ([]*model.CopiedFile, error) {
	return a.journal.ListCopiedFiles(runID)
}

// FixSnapshotNames renames VLC snapshot captures in the given directory.
func (a *App) FixSnapshotNames(dir string) ([]media.Rename, error) {
	a.op.Parameters = dir
	if err := a.persistOperation(); err != nil {
		return nil, err
	}

	renames, err := media.FixSnapshotNames(dir, a.logger)
	if err != nil {
		a.op.Status = "error"
		return renames, err
	}
	return renames, nil
}

// ResizeCoverArt resizes images in the given directory to cover-art
// dimensions. Zero width/height fall back to the configured defaults.
func (a *App) ResizeCoverArt(dir string, width, height int) ([]string, error) {
	if width <= 0 {
		width = a.cfg.Artwork.Width
	}
	if height <= 0 {
		height = a.cfg.Artwork.Height
	}

	a.op.Parameters = dir
	if err := a.persistOperation(); err != nil {
		return nil, err
	}

	saved, err := media.ResizeCoverArt(dir, width, height, a.logger)
	if err != nil {
		a.op.Status = "error"
		return saved, err
	}
	return saved, nil
}

// Close finalizes the operation record and closes all resources.
func (a *App) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.journal.FinishSyncRun(a.op.ID, a.op.Status, a.copied); err != nil {
			firstErr = fmt.Errorf("finishing sync run: %w", err)
		}
	}

	if err := a.journal.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing journal: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
