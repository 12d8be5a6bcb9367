// Package quadrat overlays a fixed n×n lattice on the observation window,
// tallies per-cell point counts per type, and exposes the queen-adjacency
// neighbor structure used by the areal statistics.
package quadrat

import (
	"errors"

	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// ErrGridSize indicates a lattice resolution below 1.
var ErrGridSize = errors.New("quadrat: grid size must be at least 1")

// Grid is an n×n equal-area partition of the window with per-type cell
// counts. Cells are indexed in row-major order (row*n + col), identically for
// every type, so per-cell comparison across types is well defined.
type Grid struct {
	n      int
	window *pattern.Window
	counts map[pattern.CellType][]int
}

// NewGrid tallies the pattern's points into an n×n lattice. Each point falls
// in exactly one cell by floor division of its coordinates; coordinates of
// exactly 1.0 are assigned to the last row/column rather than an out-of-range
// index.
func NewGrid(tp *pattern.TypedPattern, n int) (*Grid, error) {
	if n < 1 {
		return nil, ErrGridSize
	}

	g := &Grid{
		n:      n,
		window: tp.Window(),
		counts: make(map[pattern.CellType][]int, len(pattern.Types())),
	}
	for _, t := range pattern.Types() {
		vec := make([]int, n*n)
		for _, p := range tp.Points(t) {
			vec[cellIndex(p.X, p.Y, n)]++
		}
		g.counts[t] = vec
	}
	return g, nil
}

// cellIndex maps a unit-square coordinate to its row-major cell index,
// clamping the 1.0 boundary into the last row/column.
func cellIndex(x, y float64, n int) int {
	col := int(x * float64(n))
	if col >= n {
		col = n - 1
	}
	row := int(y * float64(n))
	if row >= n {
		row = n - 1
	}
	return row*n + col
}

// Size returns the lattice resolution n
func (g *Grid) Size() int {
	return g.n
}

// Cells returns the number of lattice cells (n²)
func (g *Grid) Cells() int {
	return g.n * g.n
}

// Window returns the observation window the lattice covers
func (g *Grid) Window() *pattern.Window {
	return g.window
}

// CountVector returns a copy of the row-major per-cell counts for one type.
// Its length is always n², regardless of point count.
func (g *Grid) CountVector(t pattern.CellType) []int {
	vec := make([]int, len(g.counts[t]))
	copy(vec, g.counts[t])
	return vec
}

// CellCount returns the count of one type in one cell
func (g *Grid) CellCount(t pattern.CellType, cell int) int {
	return g.counts[t][cell]
}
