// Package calresults registers the grammar for the "Most Recent Calibration
// and Verification Results" calibration chunk: one key/value pair per row.
package calresults

import (
	"github.com/specialistvlad/calparse/internal/errs"
	"github.com/specialistvlad/calparse/internal/registry"
	"github.com/specialistvlad/calparse/internal/report"
	"github.com/specialistvlad/calparse/internal/safemap"
)

// Label is the chunk label this grammar handles.
const Label = "Most Recent Calibration and Verification Results"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Decode folds each row into a collision-safe map keyed by the row's first
// cell. A two-cell row maps to a scalar, a wider row to the remaining cells.
func Decode(rows [][]string) (any, error) {
	m := safemap.New[report.Value]()
	for i, row := range rows {
		if len(row) < 2 {
			return nil, errs.New(errs.KindMalformedRow, "calresults.Decode",
				"row %d has %d cell(s), expected at least 2", i+1, len(row))
		}
		if err := m.Insert(row[0], report.FromCells(row[1:])); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Register registers the grammar with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGrammar(Label, &registry.Grammar{
		Kind:   report.KindTabularKV,
		Decode: Decode,
	})
}
