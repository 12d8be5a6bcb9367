package features

import (
	"github.com/pathomics/histospat-backend-go/internal/areal"
)

// Row is an ordered mapping of feature name to scalar result. The key order
// is fixed by the areal registry, so every analyzed image yields the same
// schema.
type Row struct {
	keys   []string
	values map[string]areal.Scalar
}

func newRow(capacity int) *Row {
	return &Row{
		keys:   make([]string, 0, capacity),
		values: make(map[string]areal.Scalar, capacity),
	}
}

// append adds a feature at the end of the row order
func (r *Row) append(key string, v areal.Scalar) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Keys returns the feature names in row order
func (r *Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the value of one feature
func (r *Row) Get(key string) (areal.Scalar, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of features in the row
func (r *Row) Len() int {
	return len(r.keys)
}

// Entry is one (name, value) pair of a row
type Entry struct {
	Key   string       `json:"key"`
	Value areal.Scalar `json:"value"`
}

// Entries returns the row as ordered entries, the export form
func (r *Row) Entries() []Entry {
	out := make([]Entry, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, Entry{Key: k, Value: r.values[k]})
	}
	return out
}
