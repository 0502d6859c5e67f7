// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/trace/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
}

// GameConfig maps game-related settings.
type GameConfig struct {
	DataDir *string `toml:"data-dir"`
	Corpus  *string `toml:"corpus"`
	History *string `toml:"history"`
}

// Template is written by `trace config` when no config file exists.
const Template = `# trace configuration

[game]
# Directory holding runs.csv, trace.db and the username file.
# data-dir = "~/.local/share/trace"

# Practice texts: .csv (content,title,author,date), .json, .yaml or .txt.
# corpus = "~/.config/trace/database.csv"

# Run history backend: "csv" or "sqlite".
# history = "csv"
`

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Defaults returns the configuration used when nothing is set.
func Defaults() model.Config {
	return model.Config{
		DataDir:    DefaultDataDir(),
		CorpusPath: DefaultCorpusPath(),
		History:    model.HistoryCSV,
	}
}

// Apply overlays the values set in the file onto cfg.
func (f FileConfig) Apply(cfg model.Config) model.Config {
	if f.Game.DataDir != nil {
		cfg.DataDir = ExpandHome(*f.Game.DataDir)
	}
	if f.Game.Corpus != nil {
		cfg.CorpusPath = ExpandHome(*f.Game.Corpus)
	}
	if f.Game.History != nil {
		cfg.History = *f.Game.History
	}
	return cfg
}

// Validate checks a resolved configuration.
func Validate(cfg model.Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data dir is empty")
	}
	if cfg.CorpusPath == "" {
		return fmt.Errorf("corpus path is empty")
	}
	switch cfg.History {
	case model.HistoryCSV, model.HistorySQLite:
		return nil
	default:
		return fmt.Errorf("history must be %q or %q, got %q", model.HistoryCSV, model.HistorySQLite, cfg.History)
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && (len(path) < 2 || path[:2] != "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return home + path[1:]
}
