package functional

import (
	"math"

	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// K calculates Ripley's K function for one type with isotropic edge
// correction, using the ratio-unbiased n(n−1) denominator. Entirely missing
// for fewer than two points.
func (e *Engine) K(tp *pattern.TypedPattern, t pattern.CellType) Curve {
	name := "K." + t.String()
	pts := tp.Points(t)
	n := len(pts)
	if n < 2 {
		return missingCurve(name, e.r)
	}

	buckets := make([]float64, len(e.r))
	e.accumulatePairs(pts, pts, true, buckets)

	scale := e.win.Area() / (float64(n) * float64(n-1))
	values := cumulate(buckets)
	for k := range values {
		values[k] *= scale
	}
	return newCurve(name, e.r, values)
}

// KLocal calculates the per-point (local) K contributions for one type and
// returns one curve per point, in point order. Entirely missing curves for
// fewer than two points (a single empty slice is returned then).
func (e *Engine) KLocal(tp *pattern.TypedPattern, t pattern.CellType) []Curve {
	pts := tp.Points(t)
	n := len(pts)
	if n < 2 {
		return nil
	}

	scale := e.win.Area() / float64(n-1)
	curves := make([]Curve, n)
	for i, p := range pts {
		buckets := make([]float64, len(e.r))
		for j, q := range pts {
			if i == j {
				continue
			}
			d := p.Dist(q)
			k := e.gridIndex(d)
			if k >= len(buckets) {
				continue
			}
			buckets[k] += ripleyWeight(p, d, e.win)
		}
		values := cumulate(buckets)
		for k := range values {
			values[k] *= scale
		}
		curves[i] = newCurve("KLocal."+t.String(), e.r, values)
	}
	return curves
}

// KLocalMean calculates the mean of the local K contributions, the summary
// curve used in the aggregated feature set. Entirely missing for fewer than
// two points.
func (e *Engine) KLocalMean(tp *pattern.TypedPattern, t pattern.CellType) Curve {
	name := "KLocal." + t.String()
	curves := e.KLocal(tp, t)
	if len(curves) == 0 {
		return missingCurve(name, e.r)
	}
	values := make([]float64, len(e.r))
	for _, c := range curves {
		for k, v := range c.Value {
			values[k] += v
		}
	}
	for k := range values {
		values[k] /= float64(len(curves))
	}
	return newCurve(name, e.r, values)
}

// KScaled calculates K(r)/(πr²), the clustering ratio against the Poisson
// reference. The r=0 sample takes the definitional limit 1.
func (e *Engine) KScaled(tp *pattern.TypedPattern, t pattern.CellType) Curve {
	name := "KScaled." + t.String()
	k := e.K(tp, t)
	if !k.Defined {
		return missingCurve(name, e.r)
	}
	values := make([]float64, len(e.r))
	for i, r := range e.r {
		if r == 0 {
			values[i] = 1
			continue
		}
		values[i] = k.Value[i] / (math.Pi * r * r)
	}
	return newCurve(name, e.r, values)
}

// KSector calculates the directional K restricted to pair directions within
// the configured sector [θ1,θ2), rescaled by 2π/(θ2−θ1) so the Poisson
// reference remains πr². Entirely missing for fewer than two points.
func (e *Engine) KSector(tp *pattern.TypedPattern, t pattern.CellType) Curve {
	name := "KSector." + t.String()
	pts := tp.Points(t)
	n := len(pts)
	if n < 2 {
		return missingCurve(name, e.r)
	}

	buckets := make([]float64, len(e.r))
	for i, p := range pts {
		for j, q := range pts {
			if i == j {
				continue
			}
			if !e.inSector(p, q) {
				continue
			}
			d := p.Dist(q)
			k := e.gridIndex(d)
			if k >= len(buckets) {
				continue
			}
			buckets[k] += ripleyWeight(p, d, e.win)
		}
	}

	span := e.opts.SectorEnd - e.opts.SectorStart
	scale := e.win.Area() / (float64(n) * float64(n-1)) * (2 * math.Pi / span)
	values := cumulate(buckets)
	for k := range values {
		values[k] *= scale
	}
	return newCurve(name, e.r, values)
}

// inSector reports whether the direction from p to q falls in [θ1,θ2)
func (e *Engine) inSector(p, q pattern.Point) bool {
	theta := math.Atan2(q.Y-p.Y, q.X-p.X)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta >= e.opts.SectorStart && theta < e.opts.SectorEnd
}

// KCross calculates the cross-type K on a marked union, counting only pairs
// of differing marks, with the same isotropic correction as the single-type
// K. Entirely missing when either mark has no points.
func (e *Engine) KCross(mu *pattern.MarkedUnion) Curve {
	name := "KCross." + mu.A.String() + mu.B.String()
	a, b := mu.PointsA(), mu.PointsB()
	if len(a) == 0 || len(b) == 0 {
		return missingCurve(name, e.r)
	}

	buckets := make([]float64, len(e.r))
	e.accumulatePairs(a, b, false, buckets)

	scale := e.win.Area() / (float64(len(a)) * float64(len(b)))
	values := cumulate(buckets)
	for k := range values {
		values[k] *= scale
	}
	return newCurve(name, e.r, values)
}

// KCrossLocal calculates the mean of per-point cross-K contributions from
// first-mark points to second-mark points. Entirely missing when either mark
// has no points.
func (e *Engine) KCrossLocal(mu *pattern.MarkedUnion) Curve {
	name := "KCrossLocal." + mu.A.String() + mu.B.String()
	a, b := mu.PointsA(), mu.PointsB()
	if len(a) == 0 || len(b) == 0 {
		return missingCurve(name, e.r)
	}

	scale := e.win.Area() / float64(len(b))
	values := make([]float64, len(e.r))
	for _, p := range a {
		buckets := make([]float64, len(e.r))
		for _, q := range b {
			d := p.Dist(q)
			k := e.gridIndex(d)
			if k >= len(buckets) {
				continue
			}
			buckets[k] += ripleyWeight(p, d, e.win)
		}
		local := cumulate(buckets)
		for k := range values {
			values[k] += local[k] * scale
		}
	}
	for k := range values {
		values[k] /= float64(len(a))
	}
	return newCurve(name, e.r, values)
}

// accumulatePairs adds the edge-corrected indicator weight of every pair
// (p in from, q in to) into the distance bucket of their separation. When
// same is true the two slices are the same set and self-pairs are skipped.
func (e *Engine) accumulatePairs(from, to []pattern.Point, same bool, buckets []float64) {
	for i, p := range from {
		for j, q := range to {
			if same && i == j {
				continue
			}
			d := p.Dist(q)
			k := e.gridIndex(d)
			if k >= len(buckets) {
				continue
			}
			buckets[k] += ripleyWeight(p, d, e.win)
		}
	}
}
