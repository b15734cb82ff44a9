package gapsync

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"gapsync-go/internal/model"
)

// Error policies for per-file I/O failures during a sweep.
const (
	// PolicyAbort halts the remaining sweep on the first per-file error.
	// Files already copied remain copied.
	PolicyAbort = "abort"
	// PolicySkip logs the failure, records it in the report, and continues.
	PolicySkip = "skip"
)

// Options carries per-call settings for Sync.
type Options struct {
	// PairName labels journal records; empty for ad-hoc pairs.
	PairName string
	// RunID attributes copies to a persisted sync run. Zero means the
	// operation is not journaled.
	RunID int64
	// Ignore filters root-relative paths out of both sweeps. May be nil.
	Ignore PathMatcher
	// OnCopy is invoked after each completed copy. May be nil.
	OnCopy func(src, dst string)
}

// Service reconciles two directory trees by copying files present in one
// and absent in the other. It never deletes and never overwrites: a file
// that exists at the destination's relative path is skipped unconditionally,
// content is never diffed or merged.
type Service struct {
	journal Journal
	fsys    Filesystem
	logger  Logger
	clock   Clock
	policy  string
}

// NewService creates a new Service with the provided dependencies.
// policy must be PolicyAbort or PolicySkip.
func NewService(journal Journal, fsys Filesystem, logger Logger, clock Clock, policy string) (*Service, error) {
	switch policy {
	case PolicyAbort, PolicySkip:
	default:
		return nil, fmt.Errorf("unknown error policy: %q", policy)
	}
	return &Service{
		journal: journal,
		fsys:    fsys,
		logger:  logger,
		clock:   clock,
		policy:  policy,
	}, nil
}

// Sync performs two one-directional sweeps: left→right, then right→left.
// Both paths must be directories; violation fails before any filesystem
// mutation. On error the returned Report still lists the copies completed
// before the failure.
func (s *Service) Sync(left, right *Path, opts Options) (*Report, error) {
	if !left.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", left.String())
	}
	if !right.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", right.String())
	}

	report := &Report{}

	if err := s.propagate(left, right, opts, report); err != nil {
		return report, fmt.Errorf("sweeping %s -> %s: %w", left.String(), right.String(), err)
	}
	if err := s.propagate(right, left, opts, report); err != nil {
		return report, fmt.Errorf("sweeping %s -> %s: %w", right.String(), left.String(), err)
	}

	s.logger.Info("sync complete",
		"left", left.String(),
		"right", right.String(),
		"copied", len(report.Copies),
		"failed", len(report.Failures))
	return report, nil
}

// propagate is one directional sweep: every regular file under src whose
// relative path is absent under dst is copied there, creating intermediate
// directories as needed. Traversal order is filesystem-dependent; the
// outcome is order-independent since the existence check is per-file.
func (s *Service) propagate(src, dst *Path, opts Options, report *Report) error {
	return s.fsys.WalkFiles(src, func(absPath, relPath string, info fs.FileInfo) error {
		if !info.Mode().IsRegular() {
			s.logger.Warn("skipping non-regular file", "path", absPath, "mode", info.Mode().String())
			return nil
		}
		if opts.Ignore != nil && opts.Ignore.Match(relPath) {
			s.logger.Debug("file ignored", "path", absPath)
			return nil
		}

		destPath := filepath.Join(dst.String(), relPath)
		if err := s.copyMissing(absPath, destPath, info, opts, report); err != nil {
			if s.policy == PolicySkip {
				s.logger.Warn("skipping file after error", "path", absPath, "error", err)
				report.Failures = append(report.Failures, FileFailure{Path: absPath, Err: err})
				return nil
			}
			return fmt.Errorf("copying %s: %w", absPath, err)
		}
		return nil
	})
}

// copyMissing copies src to dst unless dst already exists.
// Directory creation happens first and is idempotent, mirroring the
// per-file sweep behavior: destination subdirectories appear even when
// every file in them turns out to already exist.
func (s *Service) copyMissing(src, dst string, info fs.FileInfo, opts Options, report *Report) error {
	if err := s.fsys.MkdirAll(filepath.Dir(dst)); err != nil {
		return fmt.Errorf("creating destination directories: %w", err)
	}

	exists, err := s.fsys.FileExists(dst)
	if err != nil {
		return fmt.Errorf("checking destination: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.fsys.CopyFile(src, dst, info); err != nil {
		return fmt.Errorf("copying file: %w", err)
	}

	s.logger.Info("file copied", "source", src, "dest", dst, "size", info.Size())
	report.Copies = append(report.Copies, CopyAction{Source: src, Dest: dst, Size: info.Size()})

	if s.journal != nil && opts.RunID != 0 {
		rec := &model.CopiedFile{
			SyncRunID:  opts.RunID,
			PairName:   opts.PairName,
			SourcePath: src,
			DestPath:   dst,
			Size:       info.Size(),
			CopiedAt:   s.clock.Now(),
		}
		if err := s.journal.RecordCopiedFile(rec); err != nil {
			return fmt.Errorf("recording copy in journal: %w", err)
		}
	}

	if opts.OnCopy != nil {
		opts.OnCopy(src, dst)
	}
	return nil
}
