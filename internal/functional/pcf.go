package functional

import (
	"math"

	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// PairCorrelation calculates the kernel-smoothed pair correlation function
// g(r) for one type with isotropic edge correction and an Epanechnikov
// kernel. The bandwidth comes from Options.Bandwidth, or Stoyan's rule
// h = 0.15/√λ̂ when unset. The r=0 sample is NaN (the estimator divides by
// r); the curve is entirely missing for fewer than two points.
func (e *Engine) PairCorrelation(tp *pattern.TypedPattern, t pattern.CellType) Curve {
	name := "PCF." + t.String()
	pts := tp.Points(t)
	n := len(pts)
	if n < 2 {
		return missingCurve(name, e.r)
	}

	h := e.bandwidth(float64(n))
	sums := e.kernelPairSums(pts, pts, true, h)

	scale := e.win.Area() / (2 * math.Pi * float64(n) * float64(n-1))
	return newCurve(name, e.r, e.pcfValues(sums, scale))
}

// PairCorrelationCross calculates the cross-type pair correlation on a marked
// union, pairing first-mark with second-mark points. Entirely missing when
// either mark has no points.
func (e *Engine) PairCorrelationCross(mu *pattern.MarkedUnion) Curve {
	name := "PCFCross." + mu.A.String() + mu.B.String()
	a, b := mu.PointsA(), mu.PointsB()
	if len(a) == 0 || len(b) == 0 {
		return missingCurve(name, e.r)
	}

	h := e.bandwidth(float64(len(a) + len(b)))
	sums := e.kernelPairSums(a, b, false, h)

	scale := e.win.Area() / (2 * math.Pi * float64(len(a)) * float64(len(b)))
	return newCurve(name, e.r, e.pcfValues(sums, scale))
}

// bandwidth resolves the kernel bandwidth for a pattern of n points on the
// engine window
func (e *Engine) bandwidth(n float64) float64 {
	if e.opts.Bandwidth > 0 {
		return e.opts.Bandwidth
	}
	lambda := n / e.win.Area()
	return 0.15 / math.Sqrt(lambda)
}

// kernelPairSums accumulates Σ e_ij·k_h(r−d_ij) at every grid sample. Only
// the grid indices within one bandwidth of each pair distance are touched.
func (e *Engine) kernelPairSums(from, to []pattern.Point, same bool, h float64) []float64 {
	sums := make([]float64, len(e.r))
	rmax := e.RMax()
	for i, p := range from {
		for j, q := range to {
			if same && i == j {
				continue
			}
			d := p.Dist(q)
			if d > rmax+h {
				continue
			}
			w := ripleyWeight(p, d, e.win)

			lo := int(math.Ceil((d - h) / e.step))
			if lo < 0 {
				lo = 0
			}
			hi := int(math.Floor((d + h) / e.step))
			if hi >= len(e.r) {
				hi = len(e.r) - 1
			}
			for k := lo; k <= hi; k++ {
				sums[k] += w * epanechnikov(e.r[k]-d, h)
			}
		}
	}
	return sums
}

// pcfValues divides the kernel sums by 2πr and applies the estimator scale;
// the r=0 sample is NaN by definition.
func (e *Engine) pcfValues(sums []float64, scale float64) []float64 {
	values := make([]float64, len(e.r))
	for k, r := range e.r {
		if r == 0 {
			values[k] = math.NaN()
			continue
		}
		values[k] = scale * sums[k] / r
	}
	return values
}

// epanechnikov is the Epanechnikov kernel with bandwidth h
func epanechnikov(t, h float64) float64 {
	if h <= 0 {
		return 0
	}
	u := t / h
	if u < -1 || u > 1 {
		return 0
	}
	return 0.75 * (1 - u*u) / h
}
