package functional

import (
	"math"

	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// G calculates the nearest-neighbor distance distribution for one type with
// the border (reduced-sample) correction: at each r only points farther than
// r from the boundary enter, which handles the right-censoring of
// nearest-neighbor distances near the window edge. Samples where no point
// survives the reduction are NaN. Entirely missing for fewer than two points.
func (e *Engine) G(tp *pattern.TypedPattern, t pattern.CellType) Curve {
	name := "G." + t.String()
	pts := tp.Points(t)
	if len(pts) < 2 {
		return missingCurve(name, e.r)
	}

	nn := make([]float64, len(pts))
	for i, p := range pts {
		nearest := math.Inf(1)
		for j, q := range pts {
			if i == j {
				continue
			}
			if d := p.Dist(q); d < nearest {
				nearest = d
			}
		}
		nn[i] = nearest
	}
	return e.reducedSampleCDF(name, pts, nn)
}

// GCross calculates the distribution of distances from each first-mark point
// to the nearest second-mark point, border corrected. Entirely missing when
// either mark has no points.
func (e *Engine) GCross(mu *pattern.MarkedUnion) Curve {
	name := "GCross." + mu.A.String() + mu.B.String()
	a, b := mu.PointsA(), mu.PointsB()
	if len(a) == 0 || len(b) == 0 {
		return missingCurve(name, e.r)
	}

	nn := make([]float64, len(a))
	for i, p := range a {
		nearest := math.Inf(1)
		for _, q := range b {
			if d := p.Dist(q); d < nearest {
				nearest = d
			}
		}
		nn[i] = nearest
	}
	return e.reducedSampleCDF(name, a, nn)
}

// EmptySpaceF calculates the empty-space function F over a regular lattice of
// test locations, border corrected like G. Entirely missing for an empty
// point set.
func (e *Engine) EmptySpaceF(tp *pattern.TypedPattern, t pattern.CellType) Curve {
	name := "F." + t.String()
	return e.emptySpace(name, tp.Points(t))
}

// emptySpace runs the F estimator against an explicit point set
func (e *Engine) emptySpace(name string, pts []pattern.Point) Curve {
	if len(pts) == 0 {
		return missingCurve(name, e.r)
	}

	m := e.opts.FGridSize
	locs := make([]pattern.Point, 0, m*m)
	for row := 0; row < m; row++ {
		for col := 0; col < m; col++ {
			locs = append(locs, pattern.Point{
				X: (float64(col) + 0.5) / float64(m),
				Y: (float64(row) + 0.5) / float64(m),
			})
		}
	}

	nn := make([]float64, len(locs))
	for i, u := range locs {
		nearest := math.Inf(1)
		for _, q := range pts {
			if d := u.Dist(q); d < nearest {
				nearest = d
			}
		}
		nn[i] = nearest
	}
	return e.reducedSampleCDF(name, locs, nn)
}

// reducedSampleCDF evaluates the border-corrected empirical distribution of
// the distances nn measured from the reference locations refs:
//
//	Ĥ(r) = #{i : nn[i] ≤ r, b[i] > r} / #{i : b[i] > r}
//
// where b[i] is the distance from refs[i] to the window boundary. Samples
// with an empty denominator are NaN.
func (e *Engine) reducedSampleCDF(name string, refs []pattern.Point, nn []float64) Curve {
	border := make([]float64, len(refs))
	for i, p := range refs {
		border[i] = e.win.BorderDistance(p.X, p.Y)
	}

	values := make([]float64, len(e.r))
	for k, r := range e.r {
		var num, den float64
		for i := range refs {
			if border[i] <= r {
				continue
			}
			den++
			if nn[i] <= r {
				num++
			}
		}
		if den == 0 {
			values[k] = math.NaN()
			continue
		}
		values[k] = num / den
	}
	return newCurve(name, e.r, values)
}
