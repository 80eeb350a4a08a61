package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/calparse/internal/config"
	"github.com/specialistvlad/calparse/internal/errs"
	"github.com/specialistvlad/calparse/internal/registry"
)

const minimalReport = "H1,a\nH2,b\nH3,c\n\nA,1\n\nCALInfo\nLot,X\n1,foo\n\nResults\n\nDataType:,Widgets\na,b\n1,2\n\n-- CRC --\n"

// stubLoader returns a fixed profile, or an error.
type stubLoader struct {
	profile *config.Profile
	err     error
	paths   []string
}

func (l *stubLoader) Load(_ context.Context, paths ...string) (*config.Profile, error) {
	l.paths = paths
	if l.err != nil {
		return nil, l.err
	}
	return l.profile, nil
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{InputPath: "in.csv", OutputDir: "out"})
	require.NoError(t, err)
	require.Equal(t, "in.csv", cfg.InputPath)

	_, err = NewConfig(Config{OutputDir: "out"})
	require.ErrorContains(t, err, "InputPath")
	_, err = NewConfig(Config{InputPath: "in.csv"})
	require.ErrorContains(t, err, "OutputDir")
	_, err = NewConfig(Config{InputPath: "in.csv", OutputDir: "out", LogLevel: "loud"})
	require.ErrorContains(t, err, "invalid log-level")
	_, err = NewConfig(Config{InputPath: "in.csv", OutputDir: "out", LogFormat: "xml"})
	require.ErrorContains(t, err, "invalid log-format")
}

func TestNewApp_LogsCarryRunID(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var logs bytes.Buffer
	cfg := &Config{InputPath: "in.csv", OutputDir: "out", LogLevel: "debug", LogFormat: "json"}

	// --- Act ---
	a, err := NewApp(&bytes.Buffer{}, &logs, cfg, &stubLoader{})

	// --- Assert ---
	require.NoError(t, err)
	_, err = uuid.Parse(a.RunID())
	require.NoError(t, err)
	require.Contains(t, logs.String(), `"run_id":"`+a.RunID()+`"`)
	require.Equal(t, 2, a.Registry().Len(), "core grammars are registered by default")
}

func TestNewApp_ProfileSettings(t *testing.T) {
	t.Parallel()

	t.Run("profile level applies when flag unset", func(t *testing.T) {
		var logs bytes.Buffer
		loader := &stubLoader{profile: &config.Profile{Log: config.LogSettings{Level: "debug"}}}

		_, err := NewApp(&bytes.Buffer{}, &logs, &Config{InputPath: "x", OutputDir: "y", ProfilePath: "p.hcl"}, loader)

		require.NoError(t, err)
		require.Equal(t, []string{"p.hcl"}, loader.paths)
		require.Contains(t, logs.String(), "Logger configured successfully.")
	})

	t.Run("flag overrides profile", func(t *testing.T) {
		var logs bytes.Buffer
		loader := &stubLoader{profile: &config.Profile{Log: config.LogSettings{Level: "debug"}}}

		_, err := NewApp(&bytes.Buffer{}, &logs, &Config{InputPath: "x", OutputDir: "y", ProfilePath: "p.hcl", LogLevel: "error"}, loader)

		require.NoError(t, err)
		require.Empty(t, logs.String())
	})

	t.Run("loader is skipped without a profile path", func(t *testing.T) {
		loader := &stubLoader{err: errors.New("must not be called")}
		_, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{InputPath: "x", OutputDir: "y"}, loader)
		require.NoError(t, err)
		require.Nil(t, loader.paths)
	})

	t.Run("loader error", func(t *testing.T) {
		loader := &stubLoader{err: errors.New("boom")}
		_, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{InputPath: "x", OutputDir: "y", ProfilePath: "p.hcl"}, loader)
		require.ErrorContains(t, err, "failed to load profile: boom")
	})
}

type brokenModule struct{}

func (brokenModule) Register(r *registry.Registry) {
	r.RegisterGrammar("Broken", &registry.Grammar{Kind: "raw-rows"})
}

func TestNewApp_InvalidRegistryPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_, _ = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{InputPath: "x", OutputDir: "y"}, &stubLoader{}, brokenModule{})
	})
}

func TestRun_ConvertsReport(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := filepath.Join(t.TempDir(), "out")
	yes := true
	cfg := &Config{InputPath: writeInput(t, minimalReport), OutputDir: out, Summary: &yes}
	var stdout bytes.Buffer
	a, err := NewApp(&stdout, &bytes.Buffer{}, cfg, &stubLoader{})
	require.NoError(t, err)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(out, "metadata.yaml"))
	require.FileExists(t, filepath.Join(out, "calibration.yaml"))
	tsv, err := os.ReadFile(filepath.Join(out, "results", "widgets.tsv"))
	require.NoError(t, err)
	require.Equal(t, "a\tb\n1\t2\n", string(tsv))
	require.Contains(t, stdout.String(), "DataType: Widgets")
}

func TestRun_UsesProfileOutputNames(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := filepath.Join(t.TempDir(), "out")
	input := "H1,a\n\nA,1\n\nResults\n\nDataType:,Widgets\na\n1\n\n-- CRC --\n"
	no := false
	loader := &stubLoader{profile: &config.Profile{
		Input:  config.InputSettings{HeaderLines: 1},
		Output: config.OutputSettings{MetadataFile: "meta.yml", ResultsDir: "tables", Summary: &no},
	}}
	var stdout bytes.Buffer
	a, err := NewApp(&stdout, &bytes.Buffer{}, &Config{InputPath: writeInput(t, input), OutputDir: out, ProfilePath: "p.hcl"}, loader)
	require.NoError(t, err)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(out, "meta.yml"))
	require.FileExists(t, filepath.Join(out, "calibration.yaml"))
	require.FileExists(t, filepath.Join(out, "tables", "widgets.tsv"))
	require.Empty(t, stdout.String())
}

func TestRun_ParseFailureWritesNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := filepath.Join(t.TempDir(), "out")
	input := strings.Replace(minimalReport, "H3,c\n\n", "H3,c\n", 1)
	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, &Config{InputPath: writeInput(t, input), OutputDir: out}, &stubLoader{})
	require.NoError(t, err)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.ErrorIs(t, err, errs.ErrStructural)
	require.NoDirExists(t, out)
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	cfg := &Config{InputPath: filepath.Join(t.TempDir(), "missing.csv"), OutputDir: filepath.Join(t.TempDir(), "out")}
	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, &stubLoader{})
	require.NoError(t, err)

	err = a.Run(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorContains(t, err, "failed to open input")
}
