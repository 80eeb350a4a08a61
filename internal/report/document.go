// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Document aggregate and its three section types.
// CalibrationEntry.Data depends on Kind; use the typed accessors to read it.
package report

import (
	"github.com/specialistvlad/calparse/internal/safemap"
	"github.com/specialistvlad/calparse/internal/table"
)

// Metadata is the key/value record from the report header.
type Metadata = safemap.Map[Value]

// Record is one zipped row inside a grouped calibration entry.
type Record = safemap.Map[string]

// Groups maps a group label to its records, in source order.
type Groups = safemap.Map[[]*Record]

// Kind identifies the sub-grammar a calibration chunk was parsed with.
type Kind string

const (
	// KindTabularKV maps each row's first cell to the rest of the row.
	KindTabularKV Kind = "tabular-kv"
	// KindGroupedRecords holds labelled groups of header-zipped records.
	KindGroupedRecords Kind = "grouped-records"
	// KindRawRows keeps the rows untouched.
	KindRawRows Kind = "raw-rows"
)

// CalibrationEntry is one chunk of the calibration section.
type CalibrationEntry struct {
	Kind Kind
	Info Value
	Data any
}

// TabularKV returns the payload of a tabular-kv entry.
func (e *CalibrationEntry) TabularKV() (*safemap.Map[Value], bool) {
	m, ok := e.Data.(*safemap.Map[Value])
	return m, ok && e.Kind == KindTabularKV
}

// Groups returns the payload of a grouped-records entry.
func (e *CalibrationEntry) Groups() (*Groups, bool) {
	g, ok := e.Data.(*Groups)
	return g, ok && e.Kind == KindGroupedRecords
}

// Rows returns the payload of a raw-rows entry.
func (e *CalibrationEntry) Rows() ([][]string, bool) {
	r, ok := e.Data.([][]string)
	return r, ok && e.Kind == KindRawRows
}

// MarshalYAML emits the entry as the pair [info, data].
func (e *CalibrationEntry) MarshalYAML() (any, error) {
	return []any{e.Info, e.Data}, nil
}

// ResultTable is one typed table from the results section.
type ResultTable struct {
	Info []string
	Data *table.Table
}

// Document is the complete parse of one report.
type Document struct {
	Metadata    *Metadata
	Calibration []*CalibrationEntry
	Results     []*ResultTable
}
