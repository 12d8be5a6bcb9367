package pattern

import (
	"math"

	"github.com/golang/geo/r2"
)

// CellType is the canonical cell classification. The numeric order doubles as
// the fixed priority order used to break ties (e.g. quadrat majority labels).
type CellType int

const (
	Tumor CellType = iota
	Stroma
	Lymphocyte
)

// String returns the canonical name of the cell type
func (t CellType) String() string {
	switch t {
	case Tumor:
		return "Tumor"
	case Stroma:
		return "Stroma"
	case Lymphocyte:
		return "Lymphocyte"
	}
	return "Unknown"
}

// Types returns the closed set of cell types in canonical order
func Types() []CellType {
	return []CellType{Tumor, Stroma, Lymphocyte}
}

// Pairs returns the unordered type pairs in canonical order
func Pairs() [][2]CellType {
	return [][2]CellType{
		{Tumor, Stroma},
		{Tumor, Lymphocyte},
		{Stroma, Lymphocyte},
	}
}

// Point is a classified cell centroid in normalized coordinates
type Point struct {
	X    float64
	Y    float64
	Type CellType
}

// R2 returns the point location as an r2 vector
func (p Point) R2() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Dist returns the Euclidean distance to another point
func (p Point) Dist(q Point) float64 {
	return p.R2().Sub(q.R2()).Norm()
}

// LabeledPoint is a raw input centroid carrying its source label,
// before classification and normalization
type LabeledPoint struct {
	X     float64
	Y     float64
	Label string
}

// Window is the shared observation region. After normalization it is always
// the unit square; every per-type point set derived from one image holds a
// reference to the same Window so that edge correction and area-normalized
// statistics agree across types.
type Window struct {
	rect r2.Rect
}

// UnitSquare returns the [0,1]x[0,1] observation window
func UnitSquare() *Window {
	return &Window{rect: r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1})}
}

// Area returns the window area
func (w *Window) Area() float64 {
	size := w.rect.Size()
	return size.X * size.Y
}

// Perimeter returns the window perimeter
func (w *Window) Perimeter() float64 {
	size := w.rect.Size()
	return 2 * (size.X + size.Y)
}

// ShorterSide returns the length of the shorter window side
func (w *Window) ShorterSide() float64 {
	size := w.rect.Size()
	return math.Min(size.X, size.Y)
}

// Contains reports whether the point lies inside the window, boundary included
func (w *Window) Contains(x, y float64) bool {
	return w.rect.ContainsPoint(r2.Point{X: x, Y: y})
}

// SideDistances returns the distances from (x,y) to the left, right, bottom
// and top window sides
func (w *Window) SideDistances(x, y float64) (left, right, bottom, top float64) {
	left = x - w.rect.X.Lo
	right = w.rect.X.Hi - x
	bottom = y - w.rect.Y.Lo
	top = w.rect.Y.Hi - y
	return
}

// BorderDistance returns the distance from (x,y) to the nearest window side.
// Used by the border (reduced-sample) edge correction.
func (w *Window) BorderDistance(x, y float64) float64 {
	left, right, bottom, top := w.SideDistances(x, y)
	return math.Min(math.Min(left, right), math.Min(bottom, top))
}
