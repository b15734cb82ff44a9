package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gapsync-go/internal/gapsync"
)

// OSFilesystem is the real filesystem implementation of gapsync.Filesystem.
// It performs actual filesystem operations using the os package.
type OSFilesystem struct{}

// NewOSFilesystem creates a filesystem that operates on the real filesystem.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

// Resolve validates a raw path and returns a Path object.
func (m *OSFilesystem) Resolve(rawPath string) (*gapsync.Path, error) {
	// Convert to absolute path
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	// Lstat so a symlinked root is seen as a symlink, not its target
	info, err := os.Lstat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	// Check for special file types we don't support
	mode := info.Mode()
	if mode&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlinks not supported: %s", absPath)
	}
	if mode&os.ModeDevice != 0 {
		return nil, fmt.Errorf("device files not supported: %s", absPath)
	}
	if mode&os.ModeNamedPipe != 0 {
		return nil, fmt.Errorf("named pipes not supported: %s", absPath)
	}
	if mode&os.ModeSocket != 0 {
		return nil, fmt.Errorf("sockets not supported: %s", absPath)
	}

	return gapsync.NewPath(absPath, info.IsDir(), info), nil
}

// WalkFiles calls fn for every non-directory entry under root.
// The walk is depth-first in lexical order, which is whatever the
// underlying filesystem provides; callers must not rely on it.
func (m *OSFilesystem) WalkFiles(root *gapsync.Path, fn gapsync.WalkFunc) error {
	if !root.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root.String())
	}

	err := filepath.WalkDir(root.String(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		relPath, err := filepath.Rel(root.String(), p)
		if err != nil {
			return fmt.Errorf("calculating relative path: %w", err)
		}
		return fn(p, relPath, info)
	})
	if err != nil {
		return fmt.Errorf("walking directory: %w", err)
	}
	return nil
}

// FileExists reports whether any entry exists at path.
// Lstat keeps dangling symlinks counting as present, so they are never
// overwritten by a copy.
func (m *OSFilesystem) FileExists(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return true, nil
}

// MkdirAll creates a directory and any missing parents.
func (m *OSFilesystem) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return nil
}

// CopyFile copies src's content to dst via a temp file in the destination
// directory followed by a rename, then applies src's permission bits and
// modification time. A crash mid-copy leaves only a temp file behind,
// never a truncated destination.
func (m *OSFilesystem) CopyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	dir := filepath.Dir(dst)
	tmpFile, err := os.CreateTemp(dir, ".gapsync-tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, in); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	success = true

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting modification time: %w", err)
	}
	return nil
}

// Compile-time check that OSFilesystem implements gapsync.Filesystem
var _ gapsync.Filesystem = (*OSFilesystem)(nil)
