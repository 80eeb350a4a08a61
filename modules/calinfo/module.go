// Package calinfo registers the grammar for the "CALInfo" calibration chunk.
//
// The chunk is a list of named groups. A single-cell row opens a group; a row
// starting with "Lot" is a field header whose following row holds the values
// of one record in the current group:
//
//	CALInfo
//	Calibrator
//	Lot,Expiration,Manufacturer
//	B12345,2026-01-31,Acme
package calinfo

import (
	"github.com/specialistvlad/calparse/internal/errs"
	"github.com/specialistvlad/calparse/internal/registry"
	"github.com/specialistvlad/calparse/internal/report"
	"github.com/specialistvlad/calparse/internal/safemap"
)

const (
	// Label is the chunk label this grammar handles.
	Label = "CALInfo"
	// HeaderCell marks a field-name row.
	HeaderCell = "Lot"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Decode builds the grouped records. Running out of rows ends the chunk,
// including directly after a header row. Records that precede any group
// label are collected under a group named "Lot".
func Decode(rows [][]string) (any, error) {
	seen := safemap.New[struct{}]()
	var labels []string
	records := make(map[string][]*report.Record)

	for i := 0; i < len(rows); i++ {
		row := rows[i]
		if len(row) > 0 && row[0] == HeaderCell {
			if len(labels) == 0 {
				// A header with no group label opens a group named after it.
				if err := seen.Insert(HeaderCell, struct{}{}); err != nil {
					return nil, err
				}
				labels = append(labels, HeaderCell)
				records[HeaderCell] = []*report.Record{}
			}
			if i+1 >= len(rows) {
				break
			}
			i++
			record, err := safemap.FromPairs(row, rows[i])
			if err != nil {
				return nil, err
			}
			current := labels[len(labels)-1]
			records[current] = append(records[current], record)
			continue
		}

		if len(row) != 1 {
			return nil, errs.New(errs.KindMalformedRow, "calinfo.Decode",
				"row %d: group label row has %d cells, expected 1", i+1, len(row))
		}
		if err := seen.Insert(row[0], struct{}{}); err != nil {
			return nil, err
		}
		labels = append(labels, row[0])
		records[row[0]] = []*report.Record{}
	}

	groups := safemap.New[[]*report.Record]()
	for _, label := range labels {
		if err := groups.Insert(label, records[label]); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// Register registers the grammar with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGrammar(Label, &registry.Grammar{
		Kind:   report.KindGroupedRecords,
		Decode: Decode,
	})
}
