package app

import (
	"errors"
	"fmt"
	"os"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestsPath string // directory of .hcl task manifests, optional

	LogFormat string
	LogLevel  string
	HelpWidth int // 0 detects the terminal width
}

// NewConfig validates cfg and fills in defaults for empty fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if cfg.HelpWidth < 0 {
		return nil, errors.New("help-width cannot be negative")
	}

	if cfg.ManifestsPath != "" {
		info, err := os.Stat(cfg.ManifestsPath)
		if err != nil {
			return nil, fmt.Errorf("manifests path: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("manifests path %q is not a directory", cfg.ManifestsPath)
		}
	}

	return &cfg, nil
}
