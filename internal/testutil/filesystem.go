package testutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gapsync-go/internal/gapsync"
)

// MockFile represents an entry in the mock filesystem.
type MockFile struct {
	Content     []byte
	Permissions fs.FileMode
	ModTime     time.Time
	IsDirectory bool
	// TypeBits carries extra mode bits (e.g. fs.ModeSymlink) for
	// simulating non-regular entries.
	TypeBits fs.FileMode
}

// MockFilesystem is an in-memory filesystem for testing.
type MockFilesystem struct {
	files map[string]*MockFile

	// FailCopies maps a source path to an error CopyFile should return,
	// for exercising per-file error policies.
	FailCopies map[string]error
}

// NewMockFilesystem creates a new mock filesystem.
func NewMockFilesystem() *MockFilesystem {
	return &MockFilesystem{
		files:      make(map[string]*MockFile),
		FailCopies: make(map[string]error),
	}
}

// AddFile adds a regular file to the mock filesystem, creating parent
// directories implicitly.
func (m *MockFilesystem) AddFile(path string, content []byte) {
	m.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a regular file with an explicit modification time.
func (m *MockFilesystem) AddFileWithTime(path string, content []byte, modTime time.Time) {
	m.addParents(path)
	m.files[path] = &MockFile{
		Content:     content,
		Permissions: 0644,
		ModTime:     modTime,
	}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilesystem) AddDirectory(path string) {
	m.addParents(path)
	m.files[path] = &MockFile{
		Permissions: 0755,
		ModTime:     time.Now(),
		IsDirectory: true,
	}
}

// AddSymlink adds a symlink entry so walks encounter a non-regular file.
func (m *MockFilesystem) AddSymlink(path string) {
	m.addParents(path)
	m.files[path] = &MockFile{
		Permissions: 0777,
		ModTime:     time.Now(),
		TypeBits:    fs.ModeSymlink,
	}
}

// addParents creates directory entries for every ancestor of path.
func (m *MockFilesystem) addParents(path string) {
	for dir := filepath.Dir(path); dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		if _, ok := m.files[dir]; !ok {
			m.files[dir] = &MockFile{
				Permissions: 0755,
				ModTime:     time.Now(),
				IsDirectory: true,
			}
		}
	}
}

// FileContent returns a file's content and whether it exists.
func (m *MockFilesystem) FileContent(path string) ([]byte, bool) {
	f, ok := m.files[path]
	if !ok || f.IsDirectory {
		return nil, false
	}
	return f.Content, true
}

// File returns the raw mock entry for assertions on metadata.
func (m *MockFilesystem) File(path string) (*MockFile, bool) {
	f, ok := m.files[path]
	return f, ok
}

// Resolve validates a raw path and returns a Path object.
func (m *MockFilesystem) Resolve(rawPath string) (*gapsync.Path, error) {
	f, ok := m.files[rawPath]
	if !ok {
		return nil, fmt.Errorf("stat path: %s does not exist", rawPath)
	}
	if f.TypeBits&fs.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlinks not supported: %s", rawPath)
	}
	return gapsync.NewPath(rawPath, f.IsDirectory, m.infoFor(rawPath, f)), nil
}

// WalkFiles calls fn for every non-directory entry under root, in sorted
// path order.
func (m *MockFilesystem) WalkFiles(root *gapsync.Path, fn gapsync.WalkFunc) error {
	if !root.IsDir() {
		return fmt.Errorf("path is not a directory: %s", root.String())
	}

	prefix := root.String() + "/"
	var paths []string
	for p, f := range m.files {
		if f.IsDirectory || !strings.HasPrefix(p, prefix) {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		rel := strings.TrimPrefix(p, prefix)
		if err := fn(p, rel, m.infoFor(p, m.files[p])); err != nil {
			return err
		}
	}
	return nil
}

// FileExists reports whether any entry exists at path.
func (m *MockFilesystem) FileExists(path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

// MkdirAll creates a directory and any missing parents.
func (m *MockFilesystem) MkdirAll(path string) error {
	if f, ok := m.files[path]; ok {
		if !f.IsDirectory {
			return fmt.Errorf("not a directory: %s", path)
		}
		return nil
	}
	m.AddDirectory(path)
	return nil
}

// CopyFile copies a file's content, permissions, and modification time.
func (m *MockFilesystem) CopyFile(src, dst string, info fs.FileInfo) error {
	if err := m.FailCopies[src]; err != nil {
		return err
	}

	f, ok := m.files[src]
	if !ok || f.IsDirectory {
		return fmt.Errorf("source does not exist: %s", src)
	}
	if _, ok := m.files[dst]; ok {
		return fmt.Errorf("destination already exists: %s", dst)
	}

	content := make([]byte, len(f.Content))
	copy(content, f.Content)
	m.files[dst] = &MockFile{
		Content:     content,
		Permissions: f.Permissions,
		ModTime:     f.ModTime,
	}
	return nil
}

func (m *MockFilesystem) infoFor(path string, f *MockFile) fs.FileInfo {
	return &mockFileInfo{name: filepath.Base(path), file: f}
}

// mockFileInfo adapts a MockFile to fs.FileInfo.
type mockFileInfo struct {
	name string
	file *MockFile
}

func (i *mockFileInfo) Name() string { return i.name }
func (i *mockFileInfo) Size() int64  { return int64(len(i.file.Content)) }
func (i *mockFileInfo) Mode() fs.FileMode {
	mode := i.file.Permissions | i.file.TypeBits
	if i.file.IsDirectory {
		mode |= fs.ModeDir
	}
	return mode
}
func (i *mockFileInfo) ModTime() time.Time { return i.file.ModTime }
func (i *mockFileInfo) IsDir() bool        { return i.file.IsDirectory }
func (i *mockFileInfo) Sys() any           { return nil }

// Compile-time check that MockFilesystem implements gapsync.Filesystem
var _ gapsync.Filesystem = (*MockFilesystem)(nil)
