package goals

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/moneytree/internal/model"
)

// Resolve finds a goal by exact id, then name (case-insensitive), then
// unique id prefix. An empty ref resolves to the active goal.
func Resolve(st model.AppState, ref string) (model.Goal, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if g, ok := st.Active(); ok {
			return g, nil
		}
		return model.Goal{}, fmt.Errorf("no active tree: %w", ErrNotFound)
	}

	if g, _, ok := st.Find(ref); ok {
		return g, nil
	}

	var byName, byPrefix []model.Goal
	for _, g := range st.Trees {
		if strings.EqualFold(g.Name, ref) {
			byName = append(byName, g)
		}
		if strings.HasPrefix(g.ID, ref) {
			byPrefix = append(byPrefix, g)
		}
	}

	switch {
	case len(byName) == 1:
		return byName[0], nil
	case len(byName) > 1:
		return model.Goal{}, fmt.Errorf("%q matches %d trees by name: %w", ref, len(byName), ErrAmbiguous)
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) > 1:
		return model.Goal{}, fmt.Errorf("%q matches %d ids: %w", ref, len(byPrefix), ErrAmbiguous)
	}
	return model.Goal{}, fmt.Errorf("%q: %w", ref, ErrNotFound)
}
