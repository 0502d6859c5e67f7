// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "trace"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDataDir returns the directory holding the run log and username.
func DefaultDataDir() string {
	return filepath.Join(XDGDataHome(), appName)
}

// DefaultCorpusPath returns the default practice text database.
func DefaultCorpusPath() string {
	return filepath.Join(XDGConfigHome(), appName, "database.csv")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// RunsLogPath returns the CSV run log inside dataDir.
func RunsLogPath(dataDir string) string {
	return filepath.Join(dataDir, "runs.csv")
}

// DBPath returns the SQLite history database inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "trace.db")
}

// UsernamePath returns the username file inside dataDir.
func UsernamePath(dataDir string) string {
	return filepath.Join(dataDir, "user")
}
