package hcl

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/calparse/internal/ctxlog"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestLoader(env ...string) *Loader {
	return &Loader{environ: func() []string { return env }}
}

func TestLoader_SingleFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "profile.hcl")
	writeFile(t, path, `
log {
  level  = "debug"
  format = "json"
}

input {
  header_lines = 4
}

output {
  metadata_file = "meta.yml"
  results_dir   = "tables"
  summary       = true
}
`)

	// --- Act ---
	profile, err := newTestLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "debug", profile.Log.Level)
	require.Equal(t, "json", profile.Log.Format)
	require.Equal(t, 4, profile.Input.HeaderLines)
	require.Equal(t, "meta.yml", profile.Output.MetadataFile)
	require.Empty(t, profile.Output.CalibrationFile)
	require.Equal(t, "tables", profile.Output.ResultsDir)
	require.NotNil(t, profile.Output.Summary)
	require.True(t, *profile.Output.Summary)
}

func TestLoader_DirectoryMergesInLexicalOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "10-base.hcl"), `
log {
  level = "info"
}
output {
  results_dir = "results"
}
`)
	writeFile(t, filepath.Join(dir, "20-override.hcl"), `
log {
  level = "error"
}
`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `not hcl at all {{{`)

	// --- Act ---
	profile, err := newTestLoader().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "error", profile.Log.Level)
	require.Equal(t, "results", profile.Output.ResultsDir)
	require.Nil(t, profile.Output.Summary)
}

func TestLoader_EnvironmentExpressions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.hcl")
	writeFile(t, path, `
output {
  metadata_file = "${env.CALPARSE_PREFIX}-metadata.yaml"
}
`)

	profile, err := newTestLoader("CALPARSE_PREFIX=lab7", "=ignored", "1BAD=x").Load(context.Background(), path)

	require.NoError(t, err)
	require.Equal(t, "lab7-metadata.yaml", profile.Output.MetadataFile)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"syntax error", `log {`, "failed to parse HCL file"},
		{"wrong type", "input {\n  header_lines = \"many\"\n}\n", "failed to decode HCL file"},
		{"unknown attribute in block", "log {\n  colour = \"red\"\n}\n", "failed to decode HCL file"},
		{"invalid level", "log {\n  level = \"loud\"\n}\n", "invalid profile"},
		{"negative header", "input {\n  header_lines = -2\n}\n", "invalid profile"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profile.hcl")
			writeFile(t, path, tc.content)

			_, err := newTestLoader().Load(context.Background(), path)

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestLoader_WarnsAboutUnknownTopLevelItems(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "profile.hcl")
	writeFile(t, path, `
verbose = true

retry {
  count = 3
}

output {
  results_dir = "tables"
}
`)
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	// --- Act ---
	profile, err := newTestLoader().Load(ctx, path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "tables", profile.Output.ResultsDir)
	require.Contains(t, logs.String(), `msg="Ignoring unknown top-level attribute." file=`)
	require.Contains(t, logs.String(), "name=verbose")
	require.Contains(t, logs.String(), `msg="Ignoring unknown top-level block."`)
	require.Contains(t, logs.String(), "type=retry")
	require.NotContains(t, logs.String(), "type=output", "known blocks are not reported")
}

func TestLoader_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := newTestLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_NoPaths(t *testing.T) {
	t.Parallel()

	profile, err := NewLoader().Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, profile.Input.HeaderLines)
}
