package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/solitaire/internal/engine"
)

// Settings is the user settings file.
type Settings struct {
	DefaultVariation string `toml:"default_variation"`
	AutoMoveLimit    int    `toml:"automove_limit"`
	LogLevel         string `toml:"log_level"`
	LogFormat        string `toml:"log_format"`
	LayoutsPath      string `toml:"layouts_path"`
	DatabasePath     string `toml:"database_path"`
	Color            string `toml:"color"`
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or its default.
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGDataHome returns XDG_DATA_HOME or its default.
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// SettingsPath returns the default location of the settings file.
func SettingsPath() string {
	return filepath.Join(GetXDGConfigHome(), "solitaire", "config.toml")
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultVariation: "klondike",
		AutoMoveLimit:    engine.DefaultAutoMoveLimit,
		LogLevel:         "warn",
		LogFormat:        "text",
		DatabasePath:     filepath.Join(GetXDGDataHome(), "solitaire", "games.db"),
		Color:            "auto",
	}
}

// LoadSettings reads the settings file at path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}
	if _, err := toml.DecodeFile(path, settings); err != nil {
		return nil, fmt.Errorf("error decoding settings file %s: %w", path, err)
	}
	return settings, nil
}

// WriteSettings writes s to path, creating the directory if needed.
func WriteSettings(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating settings directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating settings file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(s); err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}
	return nil
}

// Config converts settings into an app Config.
func (s *Settings) Config() Config {
	return Config{
		LayoutsPath:      s.LayoutsPath,
		DatabasePath:     s.DatabasePath,
		DefaultVariation: s.DefaultVariation,
		AutoMoveLimit:    s.AutoMoveLimit,
		Color:            s.Color,
		LogFormat:        s.LogFormat,
		LogLevel:         s.LogLevel,
	}
}
