package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults_EnvOverrides(t *testing.T) {
	t.Setenv("GAPSYNC_CONFIG_PATH", "/custom/gapsync.toml")
	t.Setenv("GAPSYNC_HOME", "/custom/home")

	defaults, err := GetDefaults()
	if err != nil {
		t.Fatalf("GetDefaults() error = %v", err)
	}

	if defaults["config_path"] != "/custom/gapsync.toml" {
		t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/gapsync.toml")
	}
	if defaults["base_dir"] != "/custom/home" {
		t.Errorf("base_dir = %q, want %q", defaults["base_dir"], "/custom/home")
	}
	if defaults["log_dir"] != filepath.Join("/custom/home", "log") {
		t.Errorf("log_dir = %q", defaults["log_dir"])
	}
}

func TestGetDefaults_HomeFallback(t *testing.T) {
	t.Setenv("GAPSYNC_CONFIG_PATH", "")
	t.Setenv("GAPSYNC_HOME", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	defaults, err := GetDefaults()
	if err != nil {
		t.Fatalf("GetDefaults() error = %v", err)
	}

	if defaults["config_path"] != filepath.Join(home, ".config", "gapsync.toml") {
		t.Errorf("config_path = %q", defaults["config_path"])
	}
	if defaults["base_dir"] != filepath.Join(home, ".local", "share", "gapsync") {
		t.Errorf("base_dir = %q", defaults["base_dir"])
	}
}
