package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gapsync-go/internal/gapsync"
)

// Rename records one performed snapshot rename.
type Rename struct {
	OldName string
	NewName string
}

// FixSnapshotNames renames VLC frame captures in dir from the sequential
// form "Name.mp4NNNNN.png" back to "Name.png". The directory is not
// recursed into. An existing file at the target name is never overwritten;
// the capture is left in place with a warning instead.
func FixSnapshotNames(dir string, logger gapsync.Logger) ([]Rename, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var renames []Rename
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".png") || !strings.Contains(name, ".mp4") {
			continue
		}

		// Split at ".mp4" and keep the first part
		newName := strings.SplitN(name, ".mp4", 2)[0] + ".png"
		if newName == name {
			continue
		}

		target := filepath.Join(dir, newName)
		if _, err := os.Lstat(target); err == nil {
			logger.Warn("rename target already exists", "file", name, "target", newName)
			continue
		} else if !os.IsNotExist(err) {
			return renames, fmt.Errorf("stat %s: %w", target, err)
		}

		if err := os.Rename(filepath.Join(dir, name), target); err != nil {
			return renames, fmt.Errorf("renaming %s: %w", name, err)
		}

		logger.Info("snapshot renamed", "old", name, "new", newName)
		renames = append(renames, Rename{OldName: name, NewName: newName})
	}

	return renames, nil
}
