package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - GAPSYNC_CONFIG_PATH: config file location (default: ~/.config/gapsync.toml)
//   - GAPSYNC_HOME: base directory for gapsync data (default: ~/.local/share/gapsync)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking GAPSYNC_CONFIG_PATH env var first,
// then falling back to the default ~/.config/gapsync.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("GAPSYNC_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gapsync.toml"), nil
}

// getBaseDir returns the base directory for gapsync data, checking GAPSYNC_HOME env var first,
// then falling back to the XDG default ~/.local/share/gapsync.
func getBaseDir() (string, error) {
	if path := os.Getenv("GAPSYNC_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "gapsync"), nil
}
