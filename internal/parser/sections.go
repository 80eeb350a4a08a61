package parser

import (
	"context"
	"strings"

	"github.com/specialistvlad/calparse/internal/ctxlog"
	"github.com/specialistvlad/calparse/internal/errs"
	"github.com/specialistvlad/calparse/internal/report"
	"github.com/specialistvlad/calparse/internal/textscan"
)

// expectBlankLine consumes one line and fails unless it is blank.
func expectBlankLine(c *textscan.Cursor, op string) error {
	line, err := c.Next()
	if err != nil {
		return err
	}
	if !textscan.IsBlank(line) {
		return errs.New(errs.KindStructural, op, "expected a blank line but found %q", line).AtLine(c.Line())
	}
	return nil
}

// ExtractMetadata reads the fixed header lines, the blank line after them and
// the metadata body up to the next blank line, then parses the header and
// body lines as one metadata record. The separating blank lines are consumed
// but not part of the record.
func (p *Parser) ExtractMetadata(ctx context.Context, c *textscan.Cursor) (*report.Metadata, error) {
	const op = "parser.ExtractMetadata"
	logger := ctxlog.FromContext(ctx)

	lines := make([]string, 0, p.headerLines)
	for i := 0; i < p.headerLines; i++ {
		line, err := c.Next()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := expectBlankLine(c, op); err != nil {
		return nil, err
	}
	for {
		line, err := c.Next()
		if err != nil {
			return nil, err
		}
		if textscan.IsBlank(line) {
			break
		}
		lines = append(lines, line)
	}
	logger.Debug("Metadata block read.", "lines", len(lines))

	return ParseMetadata(strings.Join(lines, ""))
}

// ExtractCalibration reads normalized lines up to the "Results" sentinel,
// checks the blank line that follows it and parses every chunk of the
// accumulated text as a calibration entry.
func (p *Parser) ExtractCalibration(ctx context.Context, c *textscan.Cursor) ([]*report.CalibrationEntry, error) {
	const op = "parser.ExtractCalibration"
	logger := ctxlog.FromContext(ctx)

	var lines []string
	for {
		raw, err := c.Next()
		if err != nil {
			return nil, err
		}
		line := textscan.Normalize(raw)
		if textscan.IsResultsSentinel(line) {
			if err := expectBlankLine(c, op); err != nil {
				return nil, err
			}
			break
		}
		lines = append(lines, line)
	}

	chunks := textscan.SplitChunks(strings.Join(lines, ""))
	logger.Debug("Calibration block read.", "lines", len(lines), "chunks", len(chunks))

	entries := make([]*report.CalibrationEntry, 0, len(chunks))
	for i, chunk := range chunks {
		entry, err := p.ParseCalibration(chunk)
		if err != nil {
			return nil, chunkError(err, "calibration", i)
		}
		logger.Debug("Calibration entry parsed.", "index", i, "kind", entry.Kind, "info", entry.Info.Items())
		entries = append(entries, entry)
	}
	return entries, nil
}

// ExtractResults reads raw lines up to the "-- CRC --" sentinel and parses
// every chunk of the accumulated text as a result table. Nothing after the
// sentinel is read.
func (p *Parser) ExtractResults(ctx context.Context, c *textscan.Cursor) ([]*report.ResultTable, error) {
	logger := ctxlog.FromContext(ctx)

	var lines []string
	for {
		line, err := c.Next()
		if err != nil {
			return nil, err
		}
		if textscan.IsCRCSentinel(line) {
			break
		}
		lines = append(lines, line)
	}

	chunks := textscan.SplitChunks(strings.Join(lines, ""))
	logger.Debug("Results block read.", "lines", len(lines), "chunks", len(chunks))

	results := make([]*report.ResultTable, 0, len(chunks))
	for i, chunk := range chunks {
		result, err := ParseResult(chunk)
		if err != nil {
			return nil, chunkError(err, "result", i)
		}
		results = append(results, result)
	}
	return results, nil
}
