package registry

import (
	"github.com/specialistvlad/calparse/internal/report"
)

// Module is the interface that all grammar modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// DecodeFunc turns the rows following a calibration label into the entry's
// payload.
type DecodeFunc func(rows [][]string) (any, error)

// Grammar is one calibration sub-grammar.
type Grammar struct {
	Kind   report.Kind
	Decode DecodeFunc
}

// Registry holds the registered grammars for a single application instance.
type Registry struct {
	GrammarRegistry map[string]*Grammar
}

// New creates and initializes a new Registry instance.
func New(modules ...Module) *Registry {
	r := &Registry{
		GrammarRegistry: make(map[string]*Grammar),
	}
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

// RawRows is the fallback grammar: rows are kept exactly as read.
var RawRows = &Grammar{
	Kind: report.KindRawRows,
	Decode: func(rows [][]string) (any, error) {
		if rows == nil {
			rows = [][]string{}
		}
		return rows, nil
	},
}

// Lookup returns the grammar registered for label, or RawRows.
func (r *Registry) Lookup(label string) *Grammar {
	if g, ok := r.GrammarRegistry[label]; ok {
		return g
	}
	return RawRows
}

// Len returns the number of registered labels.
func (r *Registry) Len() int {
	return len(r.GrammarRegistry)
}
