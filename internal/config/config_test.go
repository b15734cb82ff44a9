package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		HostID:  "test-host-abc",
		BaseDir: "/home/user/.local/share/gapsync",
		LogDir:  "/home/user/.local/share/gapsync/log",
		Pairs: []PairConfig{
			{Name: "videos", Left: "/mnt/a/Videos", Right: "/mnt/b/Videos", Ignore: []string{"*.part"}},
		},
		Sync:    SyncConfig{OnError: "skip"},
		Journal: JournalConfig{Type: "sqlite", DataDir: "/home/user/.local/share/gapsync/journal"},
		Artwork: ArtworkConfig{Width: 440, Height: 350},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.HostID != original.HostID {
		t.Errorf("HostID = %q, want %q", got.HostID, original.HostID)
	}
	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if len(got.Pairs) != 1 {
		t.Fatalf("len(Pairs) = %d, want 1", len(got.Pairs))
	}
	if got.Pairs[0].Name != "videos" {
		t.Errorf("Pair.Name = %q, want %q", got.Pairs[0].Name, "videos")
	}
	if got.Pairs[0].Left != "/mnt/a/Videos" || got.Pairs[0].Right != "/mnt/b/Videos" {
		t.Errorf("Pair paths = %q / %q", got.Pairs[0].Left, got.Pairs[0].Right)
	}
	if len(got.Pairs[0].Ignore) != 1 || got.Pairs[0].Ignore[0] != "*.part" {
		t.Errorf("Pair.Ignore = %v, want [*.part]", got.Pairs[0].Ignore)
	}
	if got.Sync.OnError != "skip" {
		t.Errorf("Sync.OnError = %q, want %q", got.Sync.OnError, "skip")
	}
	if got.Journal.Type != "sqlite" {
		t.Errorf("Journal.Type = %q, want %q", got.Journal.Type, "sqlite")
	}
	if got.Artwork.Width != 440 || got.Artwork.Height != 350 {
		t.Errorf("Artwork = %dx%d, want 440x350", got.Artwork.Width, got.Artwork.Height)
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig("host-1", "/data/gapsync")

	if cfg.LogDir != filepath.Join("/data/gapsync", "log") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.Sync.OnError != "abort" {
		t.Errorf("Sync.OnError = %q, want %q", cfg.Sync.OnError, "abort")
	}
	if cfg.Journal.Type != "sqlite" {
		t.Errorf("Journal.Type = %q, want %q", cfg.Journal.Type, "sqlite")
	}
	if cfg.Journal.DataDir != filepath.Join("/data/gapsync", "journal") {
		t.Errorf("Journal.DataDir = %q", cfg.Journal.DataDir)
	}
	if cfg.Artwork.Width != 440 || cfg.Artwork.Height != 350 {
		t.Errorf("Artwork = %dx%d, want 440x350", cfg.Artwork.Width, cfg.Artwork.Height)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates a new config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf", "gapsync.toml")
		cfg := NewConfig("host-1", "/data/gapsync")

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.HostID != "host-1" {
			t.Errorf("HostID = %q, want %q", got.HostID, "host-1")
		}
	})

	t.Run("refuses to overwrite an existing config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gapsync.toml")
		if err := os.WriteFile(path, []byte("host_id = \"keep\"\n"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		if err := Init(path, NewConfig("new", "/tmp")); err == nil {
			t.Error("Init() expected error for existing config")
		}
	})
}

func TestReadFromFile_Missing(t *testing.T) {
	if _, err := ReadFromFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("ReadFromFile() expected error for missing file")
	}
}
