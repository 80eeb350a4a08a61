package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/calparse/internal/ctxlog"
)

// ValidateRegistry checks that every registered grammar is usable.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var problems []string
	logger := ctxlog.FromContext(ctx)

	labels := make([]string, 0, len(r.GrammarRegistry))
	for label := range r.GrammarRegistry {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		g := r.GrammarRegistry[label]
		switch {
		case label == "":
			problems = append(problems, "grammar registered under an empty label")
		case g == nil:
			problems = append(problems, fmt.Sprintf("grammar '%s' is nil", label))
		case g.Decode == nil:
			problems = append(problems, fmt.Sprintf("grammar '%s' has no decode function", label))
		case g.Kind == "":
			problems = append(problems, fmt.Sprintf("grammar '%s' has no kind", label))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	logger.Debug("Registry validation passed.", "grammars", labels)
	return nil
}
