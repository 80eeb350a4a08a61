package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/calparse/internal/ctxlog"
	"github.com/specialistvlad/calparse/internal/errs"
	"github.com/specialistvlad/calparse/internal/export"
	"github.com/specialistvlad/calparse/internal/parser"
	"github.com/specialistvlad/calparse/internal/summary"
)

// Run converts the input report into the output directory. The input is
// fully parsed before anything is written, so a malformed report leaves no
// output behind.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "input", a.config.InputPath, "output", a.config.OutputDir)

	in, err := os.Open(a.config.InputPath)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	p := parser.New(a.registry, parser.Options{HeaderLines: a.profile.Input.HeaderLines})
	doc, err := p.Parse(ctx, in)
	if err != nil {
		if kind, ok := errs.KindOf(err); ok {
			a.logger.Debug("Report rejected.", "kind", kind.String())
		}
		return fmt.Errorf("failed to parse %s: %w", a.config.InputPath, err)
	}
	a.logger.Info("Report parsed.",
		"metadata_keys", doc.Metadata.Len(),
		"calibration_entries", len(doc.Calibration),
		"result_tables", len(doc.Results))

	w := export.New(export.Options{
		MetadataFile:    a.profile.Output.MetadataFile,
		CalibrationFile: a.profile.Output.CalibrationFile,
		ResultsDir:      a.profile.Output.ResultsDir,
	})
	written, err := w.Write(ctx, doc, a.config.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if a.summaryEnabled() {
		if err := summary.Render(a.outW, doc, written); err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.", "files", len(written))
	return nil
}
