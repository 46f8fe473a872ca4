package app

import (
	"errors"
	"fmt"
)

// Config holds all the configuration an App instance needs.
type Config struct {
	// LayoutsPath is an optional directory of extra layout files.
	LayoutsPath  string
	DatabasePath string

	DefaultVariation string
	AutoMoveLimit    int
	Color            string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level '%s': must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel))
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format '%s': must be 'text' or 'json'", cfg.LogFormat))
	}

	switch cfg.Color {
	case "":
		cfg.Color = "auto"
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("invalid color mode '%s': must be 'auto', 'always', or 'never'", cfg.Color))
	}

	if cfg.AutoMoveLimit < 0 {
		errs = append(errs, fmt.Errorf("automove limit must not be negative, got %d", cfg.AutoMoveLimit))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &cfg, nil
}
