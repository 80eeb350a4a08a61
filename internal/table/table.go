// Package table parses the CSV result tables of a report into typed columns.
//
// Column types are inferred per column: a column is an integer column when
// every present cell is an integer, a float column when every present cell is
// a decimal number (or when an integer column has missing cells), and a string
// column otherwise. Missing cells are empty cells or one of the usual "not
// available" markers such as NA or NaN.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/specialistvlad/calparse/internal/errs"
)

// ColumnType is the inferred type of a column.
type ColumnType int

const (
	String ColumnType = iota
	Int
	Float
)

// String returns the string representation of ColumnType.
func (t ColumnType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "string"
	}
}

// Column is a named, typed column.
type Column struct {
	Name string
	Type ColumnType
}

// Cell is one parsed value. Only the field matching the column type is set.
type Cell struct {
	Missing bool
	Text    string
	Int     int64
	Float   float64
}

// Table is a parsed result table.
type Table struct {
	Columns []Column
	Rows    [][]Cell
}

var (
	intRe   = regexp.MustCompile(`^[+-]?\d+$`)
	floatRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

var missingMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

func isMissing(s string) bool {
	_, ok := missingMarkers[s]
	return ok
}

// NewReader returns a csv.Reader configured for report text: lazy quotes and
// a variable number of fields per record.
func NewReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// Parse reads a header row followed by data rows and infers column types.
func Parse(text string) (*Table, error) {
	cr := NewReader(strings.NewReader(text))

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errs.New(errs.KindMalformedRow, "table.Parse", "table has no header row")
	}
	if err != nil {
		return nil, errs.Wrap(err, errs.KindMalformedRow, "table.Parse")
	}

	width := len(header)
	var raw [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Wrap(err, errs.KindMalformedRow, "table.Parse")
		}
		if len(rec) > width {
			return nil, errs.New(errs.KindMalformedRow, "table.Parse",
				"expected %d fields in row %d, saw %d", width, len(raw)+1, len(rec))
		}
		for len(rec) < width {
			rec = append(rec, "")
		}
		raw = append(raw, rec)
	}

	t := &Table{Columns: make([]Column, width), Rows: make([][]Cell, len(raw))}
	for i, name := range columnNames(header) {
		t.Columns[i] = Column{Name: name, Type: inferType(raw, i)}
	}
	for r, rec := range raw {
		row := make([]Cell, width)
		for c, s := range rec {
			row[c] = convert(s, t.Columns[c].Type)
		}
		t.Rows[r] = row
	}
	return t, nil
}

// columnNames fills empty names and suffixes repeated names with .1, .2, ...
func columnNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			counts[h]++
			name = fmt.Sprintf("%s.%d", h, counts[h])
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func inferType(raw [][]string, col int) ColumnType {
	if len(raw) == 0 {
		return String
	}
	allInt, allNum, anyMissing, anyPresent := true, true, false, false
	for _, rec := range raw {
		s := rec[col]
		if isMissing(s) {
			anyMissing = true
			continue
		}
		anyPresent = true
		if !intRe.MatchString(s) {
			allInt = false
		} else if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			allInt = false
		}
		if !floatRe.MatchString(s) {
			allNum = false
			break
		}
	}
	switch {
	case !anyPresent:
		return Float
	case allInt && !anyMissing:
		return Int
	case allNum:
		return Float
	default:
		return String
	}
}

func convert(s string, typ ColumnType) Cell {
	switch typ {
	case Int:
		v, _ := strconv.ParseInt(s, 10, 64)
		return Cell{Int: v}
	case Float:
		if isMissing(s) {
			return Cell{Missing: true}
		}
		v, _ := strconv.ParseFloat(s, 64)
		return Cell{Float: v}
	default:
		if isMissing(s) {
			return Cell{Missing: true}
		}
		return Cell{Text: s}
	}
}

// Format renders a cell of the given type. Missing cells render as "".
func Format(c Cell, typ ColumnType) string {
	if c.Missing {
		return ""
	}
	switch typ {
	case Int:
		return strconv.FormatInt(c.Int, 10)
	case Float:
		return formatFloat(c.Float)
	default:
		return c.Text
	}
}

// formatFloat produces the shortest round-trip form, switching to exponent
// notation outside [1e-4, 1e16) and keeping a ".0" on integral values.
func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Header returns the column names.
func (t *Table) Header() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Records returns every row rendered with Format.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rec := make([]string, len(row))
		for c, cell := range row {
			rec[c] = Format(cell, t.Columns[c].Type)
		}
		out[r] = rec
	}
	return out
}
