package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/specialistvlad/calparse/internal/config"
	"github.com/specialistvlad/calparse/internal/ctxlog"
	"github.com/specialistvlad/calparse/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	profile  *config.Profile
	runID    string
}

// NewApp is the constructor for the main application. Log records go to
// logW; the conversion summary goes to outW. With no modules given, the
// core grammars are registered.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	runID := uuid.NewString()

	// A bootstrap logger covers profile loading; it is rebuilt once the
	// profile may have changed level or format.
	logger := newLogger(pick(cfg.LogLevel, DefaultLogLevel), pick(cfg.LogFormat, DefaultLogFormat), logW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	profile := &config.Profile{}
	if cfg.ProfilePath != "" {
		loaded, err := loader.Load(ctx, cfg.ProfilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		profile = loaded
		logger.Debug("Profile loaded.", "path", cfg.ProfilePath)
	}

	level := pick(cfg.LogLevel, profile.Log.Level, DefaultLogLevel)
	format := pick(cfg.LogFormat, profile.Log.Format, DefaultLogFormat)
	logger = newLogger(level, format, logW).With("run_id", runID)
	ctx = ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.", "log_level", level, "log_format", format)

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(modules...)
	logger.Debug("All grammar modules registered.", "count", len(modules))

	if err := reg.ValidateRegistry(ctx); err != nil {
		// This is a programmer error, so we panic.
		panic(err)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
		profile:  profile,
		runID:    runID,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// RunID returns the identifier attached to every log record of this app.
func (a *App) RunID() string {
	return a.runID
}

// summaryEnabled resolves the summary switch: command line, then profile.
func (a *App) summaryEnabled() bool {
	if a.config.Summary != nil {
		return *a.config.Summary
	}
	if a.profile.Output.Summary != nil {
		return *a.profile.Output.Summary
	}
	return false
}
