package features

import (
	"fmt"
	"sort"

	"github.com/pathomics/histospat-backend-go/internal/areal"
	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// TopologyProvider is the collaborator contract of the persistent-homology
// module. It consumes the same normalized pattern, independently of the areal
// and functional engines, and returns its own scalar feature row. The core
// never inspects its internals.
type TopologyProvider interface {
	Features(tp *pattern.TypedPattern) (map[string]float64, error)
}

// AppendTopology computes the collaborator's features and concatenates them
// after the areal row, keys in lexicographic order for a stable schema.
func AppendTopology(row *Row, tp *pattern.TypedPattern, provider TopologyProvider) error {
	if provider == nil {
		return nil
	}
	extra, err := provider.Features(tp)
	if err != nil {
		return fmt.Errorf("features: topology provider failed: %w", err)
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		row.append(k, areal.Value(extra[k]))
	}
	return nil
}
