package functional

import (
	"gonum.org/v1/gonum/floats"

	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// Engine evaluates the functional statistic suite for one window and one
// distance grid. It holds no per-pattern state; every statistic is a pure
// function of its arguments, so one engine can serve many patterns of the
// same window geometry.
type Engine struct {
	opts Options
	win  *pattern.Window
	r    []float64
	step float64
}

// NewEngine validates the options and precomputes the shared distance grid
// spanning [0, r_max], r_max = RMaxFraction × the shorter window side.
func NewEngine(w *pattern.Window, opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	rmax := opts.RMaxFraction * w.ShorterSide()
	r := make([]float64, opts.GridLength)
	floats.Span(r, 0, rmax)

	return &Engine{
		opts: opts,
		win:  w,
		r:    r,
		step: rmax / float64(opts.GridLength-1),
	}, nil
}

// R returns the shared distance grid. The returned slice is shared backing
// storage; callers must not modify it.
func (e *Engine) R() []float64 {
	return e.r
}

// RMax returns the largest grid distance
func (e *Engine) RMax() float64 {
	return e.r[len(e.r)-1]
}

// Window returns the engine's observation window
func (e *Engine) Window() *pattern.Window {
	return e.win
}

// gridIndex returns the smallest grid index k with r[k] >= d, or len(r) when
// d exceeds r_max.
func (e *Engine) gridIndex(d float64) int {
	if d > e.RMax() {
		return len(e.r)
	}
	k := int(d / e.step)
	if e.r[k] < d {
		k++
	}
	return k
}

// cumulate converts per-bucket increments into a running sum over the grid
func cumulate(buckets []float64) []float64 {
	out := make([]float64, len(buckets))
	var sum float64
	for i, b := range buckets {
		sum += b
		out[i] = sum
	}
	return out
}
