// Package parser turns an instrument report into a report.Document.
//
// A report has three sections that always appear in the same order:
// metadata, calibration and results. Each section extractor reads from a
// shared textscan.Cursor up to its own terminator and leaves the cursor on
// the first line of the next section. The raw text of a section is then cut
// into chunks and every chunk is handed to the matching chunk parser.
package parser

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/calparse/internal/ctxlog"
	"github.com/specialistvlad/calparse/internal/registry"
	"github.com/specialistvlad/calparse/internal/report"
	"github.com/specialistvlad/calparse/internal/textscan"
)

// DefaultHeaderLines is the number of fixed header lines opening a report.
const DefaultHeaderLines = 3

// Options configures a Parser.
type Options struct {
	// HeaderLines is the number of lines read unconditionally before the
	// blank line that opens the metadata body. Zero means DefaultHeaderLines.
	HeaderLines int
}

// Parser parses reports using the calibration grammars of a registry.
type Parser struct {
	grammars    *registry.Registry
	headerLines int
}

// New creates a Parser. A nil registry means only raw-row calibration
// entries are produced.
func New(grammars *registry.Registry, opts Options) *Parser {
	if grammars == nil {
		grammars = registry.New()
	}
	if opts.HeaderLines <= 0 {
		opts.HeaderLines = DefaultHeaderLines
	}
	return &Parser{grammars: grammars, headerLines: opts.HeaderLines}
}

// Parse reads a complete report from r.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*report.Document, error) {
	logger := ctxlog.FromContext(ctx)
	cursor := textscan.NewCursor(r)

	metadata, err := p.ExtractMetadata(ctxlog.With(ctx, "section", "metadata"), cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata section: %w", err)
	}
	logger.Debug("Metadata section parsed.", "keys", metadata.Len(), "next_line", cursor.Line()+1)

	calibration, err := p.ExtractCalibration(ctxlog.With(ctx, "section", "calibration"), cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration section: %w", err)
	}
	logger.Debug("Calibration section parsed.", "entries", len(calibration), "next_line", cursor.Line()+1)

	results, err := p.ExtractResults(ctxlog.With(ctx, "section", "results"), cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to read results section: %w", err)
	}
	logger.Debug("Results section parsed.", "tables", len(results), "crc_line", cursor.Line())

	return &report.Document{
		Metadata:    metadata,
		Calibration: calibration,
		Results:     results,
	}, nil
}
