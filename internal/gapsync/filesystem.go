package gapsync

import "io/fs"

// WalkFunc is called once per non-directory entry discovered by WalkFiles.
// absPath is the entry's absolute path, relPath its path relative to the
// walk root. Returning an error stops the walk.
type WalkFunc func(absPath, relPath string, info fs.FileInfo) error

// Filesystem provides an interface for filesystem operations.
// It abstracts file access to enable testing without touching the real filesystem.
type Filesystem interface {
	// Resolve validates a raw path and returns a Path object.
	// It resolves the path to an absolute path, stats it, and validates
	// it's a regular file or directory (not a symlink, device, etc.).
	Resolve(rawPath string) (*Path, error)

	// WalkFiles calls fn for every non-directory entry under root,
	// recursing into subdirectories at arbitrary depth. Filtering of
	// non-regular entries (symlinks, sockets, ...) is left to fn.
	WalkFiles(root *Path, fn WalkFunc) error

	// FileExists reports whether any entry exists at the given path.
	// It does not follow symlinks: a dangling link still counts as present.
	FileExists(path string) (bool, error)

	// MkdirAll creates a directory and any missing parents.
	// It is a no-op if the directory already exists.
	MkdirAll(path string) error

	// CopyFile copies a regular file's content from src to dst,
	// preserving the permission bits and modification time carried by info.
	// dst must not already exist.
	CopyFile(src, dst string, info fs.FileInfo) error
}

// PathMatcher reports whether a root-relative path should be excluded
// from a sweep.
type PathMatcher interface {
	Match(relativePath string) bool
}
