package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/calparse/internal/errs"
	"github.com/specialistvlad/calparse/internal/registry"
	"github.com/specialistvlad/calparse/internal/report"
	"github.com/specialistvlad/calparse/internal/safemap"
	"github.com/specialistvlad/calparse/internal/table"
	"github.com/specialistvlad/calparse/internal/textscan"
)

// chunkError annotates a chunk parser failure with the chunk's position.
func chunkError(err error, section string, index int) error {
	return fmt.Errorf("%s chunk %d: %w", section, index+1, err)
}

// readRows parses text as CSV rows.
func readRows(text string) ([][]string, error) {
	cr := table.NewReader(strings.NewReader(text))
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, errs.Wrap(err, errs.KindMalformedRow, "parser.readRows")
		}
		rows = append(rows, rec)
	}
}

// splitFirstLine returns the first line of text (terminator included) and
// the remainder.
func splitFirstLine(text string) (string, string) {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i+1], text[i+1:]
	}
	return text, ""
}

// ParseCSVLine normalizes a single line and parses it as one CSV row.
func ParseCSVLine(line string) ([]string, error) {
	rows, err := readRows(textscan.Normalize(line))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.New(errs.KindStructural, "parser.ParseCSVLine", "expected a row but found %q", line)
	}
	return rows[0], nil
}

// ParseMetadata parses a metadata block. Every row needs a key and at least
// one value; a repeated key is an error.
func ParseMetadata(text string) (*report.Metadata, error) {
	const op = "parser.ParseMetadata"

	rows, err := readRows(text)
	if err != nil {
		return nil, err
	}
	md := safemap.New[report.Value]()
	for i, row := range rows {
		if len(row) < 2 {
			return nil, errs.New(errs.KindMalformedRow, op,
				"row %d has %d cell(s), expected a key and at least one value", i+1, len(row))
		}
		if err := md.Insert(row[0], report.FromCells(row[1:])); err != nil {
			return nil, err
		}
	}
	return md, nil
}

// ParseCalibration parses one calibration chunk. The first row gives the
// entry's info; a single-cell info selects the grammar by label.
func (p *Parser) ParseCalibration(chunk string) (*report.CalibrationEntry, error) {
	first, rest := splitFirstLine(chunk)
	firstRow, err := ParseCSVLine(first)
	if err != nil {
		return nil, err
	}

	info := report.List(firstRow)
	grammar := registry.RawRows
	if len(firstRow) == 1 {
		label := strings.TrimRight(firstRow[0], ":")
		info = report.Scalar(label)
		grammar = p.grammars.Lookup(label)
	}

	rows, err := readRows(rest)
	if err != nil {
		return nil, err
	}
	data, err := grammar.Decode(rows)
	if err != nil {
		return nil, err
	}
	return &report.CalibrationEntry{Kind: grammar.Kind, Info: info, Data: data}, nil
}

// ParseResult parses one result chunk: an info row followed by a table.
func ParseResult(chunk string) (*report.ResultTable, error) {
	first, rest := splitFirstLine(chunk)
	info, err := ParseCSVLine(first)
	if err != nil {
		return nil, err
	}
	data, err := table.Parse(rest)
	if err != nil {
		return nil, err
	}
	return &report.ResultTable{Info: info, Data: data}, nil
}
