package app

import (
	"errors"

	"github.com/specialistvlad/calparse/internal/config"
)

// Config holds the entrypoint-provided settings of a single conversion.
// Empty strings and nil pointers mean "not given"; the profile and the
// built-in defaults fill them in.
type Config struct {
	InputPath   string
	OutputDir   string
	ProfilePath string

	LogFormat string
	LogLevel  string
	Summary   *bool
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OutputDir is a required configuration field and cannot be empty")
	}
	if cfg.LogLevel != "" {
		if err := config.ValidateLogLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	if cfg.LogFormat != "" {
		if err := config.ValidateLogFormat(cfg.LogFormat); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
