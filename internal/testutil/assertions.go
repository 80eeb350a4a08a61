package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// AssertOutputFile checks that the file at rel under the output directory
// has exactly the expected content.
func AssertOutputFile(t *testing.T, result *HarnessResult, rel, expected string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(result.OutputDir, rel))
	require.NoError(t, err, "output file %s was not written", rel)
	require.Equal(t, expected, string(data), "unexpected content in %s", rel)
}

// AssertOutputYAML decodes the YAML file at rel under the output directory
// and compares it with expected.
func AssertOutputYAML(t *testing.T, result *HarnessResult, rel string, expected any) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(result.OutputDir, rel))
	require.NoError(t, err, "output file %s was not written", rel)
	var got any
	require.NoError(t, yaml.Unmarshal(data, &got), "output file %s is not valid YAML", rel)
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", rel, diff)
	}
}

// AssertNoOutput checks that the run left no output directory behind.
func AssertNoOutput(t *testing.T, result *HarnessResult) {
	t.Helper()
	require.NoDirExists(t, result.OutputDir)
}

// AssertLogged checks that a log record with the given message was emitted.
func AssertLogged(t *testing.T, result *HarnessResult, msg string) {
	t.Helper()

	expected := "msg=" + quoteIfNeeded(msg)
	require.True(t,
		strings.Contains(result.LogOutput, expected),
		"expected log record %q was not found in logs", msg,
	)
}

// quoteIfNeeded mirrors how the slog text handler renders a message value.
func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " =\"") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
