// Package testutil provides a harness for running complete conversions in
// integration tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/calparse/internal/app"
	"github.com/specialistvlad/calparse/internal/hcl"
	"github.com/specialistvlad/calparse/internal/registry"
)

// ReportFile is the name under which the harness expects the input report.
const ReportFile = "report.csv"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Stdout    string
	OutputDir string
	Err       error
	App       *app.App
}

// Harness describes one conversion run. Files are written relative to a
// temporary root; it must contain ReportFile. A non-empty Profile names a
// file or directory under that root.
type Harness struct {
	Files   map[string]string
	Profile string
	Summary bool
	Modules []registry.Module
	// PrepareOutput, when set, runs against the output path before the
	// conversion starts.
	PrepareOutput func(t *testing.T, dir string)
}

// RunConversion runs the harness with a background context.
func RunConversion(t *testing.T, h Harness) *HarnessResult {
	t.Helper()
	return RunConversionWithContext(context.Background(), t, h)
}

// RunConversionWithContext writes the harness files into a temporary root,
// builds an app with debug logging and runs it.
func RunConversionWithContext(ctx context.Context, t *testing.T, h Harness) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range h.Files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	outDir := filepath.Join(tmpDir, "out")
	if h.PrepareOutput != nil {
		h.PrepareOutput(t, outDir)
	}

	cfg := &app.Config{
		InputPath: filepath.Join(tmpDir, ReportFile),
		OutputDir: outDir,
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if h.Profile != "" {
		cfg.ProfilePath = filepath.Join(tmpDir, h.Profile)
	}
	if h.Summary {
		summary := true
		cfg.Summary = &summary
	}

	logBuffer := &SafeBuffer{}
	stdout := &SafeBuffer{}
	result := &HarnessResult{OutputDir: outDir}

	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		result.App, result.Err = app.NewApp(stdout, logBuffer, cfg, hcl.NewLoader(), h.Modules...)
	}()

	switch {
	case panicErr != nil:
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
	case result.Err == nil:
		result.Err = result.App.Run(ctx)
	}

	if os.Getenv("CALPARSE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result.LogOutput = logBuffer.String()
	result.Stdout = stdout.String()
	return result
}
