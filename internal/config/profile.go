package config

import (
	"context"
	"fmt"
)

// Loader is the interface for a format-specific profile loader.
type Loader interface {
	// Load reads profiles from the given paths (files or directories) and
	// returns them merged in path order.
	Load(ctx context.Context, paths ...string) (*Profile, error)
}

// Profile holds the optional, file-provided settings of a conversion.
// Zero values mean "not set".
type Profile struct {
	Log    LogSettings
	Input  InputSettings
	Output OutputSettings
}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string
	Format string
}

// InputSettings configures how the report is read.
type InputSettings struct {
	HeaderLines int
}

// OutputSettings configures output naming.
type OutputSettings struct {
	MetadataFile    string
	CalibrationFile string
	ResultsDir      string
	Summary         *bool
}

// Merge overlays every setting that is set in other onto p.
func (p *Profile) Merge(other *Profile) {
	if other == nil {
		return
	}
	setString(&p.Log.Level, other.Log.Level)
	setString(&p.Log.Format, other.Log.Format)
	if other.Input.HeaderLines != 0 {
		p.Input.HeaderLines = other.Input.HeaderLines
	}
	setString(&p.Output.MetadataFile, other.Output.MetadataFile)
	setString(&p.Output.CalibrationFile, other.Output.CalibrationFile)
	setString(&p.Output.ResultsDir, other.Output.ResultsDir)
	if other.Output.Summary != nil {
		v := *other.Output.Summary
		p.Output.Summary = &v
	}
}

// Validate checks the profile for values no conversion could use.
func (p *Profile) Validate() error {
	if p.Input.HeaderLines < 0 {
		return fmt.Errorf("input.header_lines must not be negative, got %d", p.Input.HeaderLines)
	}
	if err := ValidateLogLevel(p.Log.Level); p.Log.Level != "" && err != nil {
		return err
	}
	if err := ValidateLogFormat(p.Log.Format); p.Log.Format != "" && err != nil {
		return err
	}
	return nil
}

// ValidateLogLevel accepts debug, info, warn and error.
func ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", level)
}

// ValidateLogFormat accepts text and json.
func ValidateLogFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", format)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
