// Package functional computes distance-indexed summary statistics of typed
// point patterns: the K, G, J, L, pair-correlation and mark-connection
// families, single- and cross-type, over a common distance grid with edge
// correction.
package functional

import "math"

// Curve is a statistic sampled over the shared distance grid. R and Value are
// parallel slices; individual undefined samples are NaN. Defined is false for
// an entirely-missing curve (minimum point count unmet), which is still
// assembled as a Curve so aggregation code never special-cases it.
type Curve struct {
	Name    string
	R       []float64
	Value   []float64
	Defined bool
}

// newCurve wraps sampled values over the grid r
func newCurve(name string, r, values []float64) Curve {
	return Curve{Name: name, R: r, Value: values, Defined: true}
}

// missingCurve is the entirely-undefined curve over the grid r
func missingCurve(name string, r []float64) Curve {
	values := make([]float64, len(r))
	for i := range values {
		values[i] = math.NaN()
	}
	return Curve{Name: name, R: r, Value: values, Defined: false}
}

// Len returns the number of samples
func (c Curve) Len() int {
	return len(c.R)
}

// At returns the (r, value) pair at index i
func (c Curve) At(i int) (float64, float64) {
	return c.R[i], c.Value[i]
}
