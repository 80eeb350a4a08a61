package registry

import (
	"fmt"
	"log/slog"
)

// RegisterGrammar registers the grammar used for chunks labelled label.
func (r *Registry) RegisterGrammar(label string, g *Grammar) {
	if _, exists := r.GrammarRegistry[label]; exists {
		panic(fmt.Sprintf("calibration grammar for label '%s' already registered", label))
	}
	slog.Debug("Registering calibration grammar.", "label", label, "kind", g.Kind)
	r.GrammarRegistry[label] = g
}
