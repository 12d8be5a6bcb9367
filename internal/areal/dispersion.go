package areal

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// VMR calculates the variance-to-mean ratio of a count vector. Values above 1
// indicate clustering, below 1 regularity. Missing when the mean is zero.
func VMR(counts []int) Scalar {
	x := toFloat(counts)
	mean := stat.Mean(x, nil)
	if mean == 0 {
		return Missing()
	}
	return Value(stat.Variance(x, nil) / mean)
}

// ChiSquare calculates the quadrat chi-square dispersion statistic
// Σ(countᵢ−mean)²/mean. Missing when the mean is zero.
func ChiSquare(counts []int) Scalar {
	x := toFloat(counts)
	mean := stat.Mean(x, nil)
	if mean == 0 {
		return Missing()
	}
	var sum float64
	for _, v := range x {
		d := v - mean
		sum += d * d
	}
	return Value(sum / mean)
}

// ClarkEvans calculates the Clark–Evans nearest-neighbor index with the
// Donnelly boundary correction, directly on the point set rather than quadrat
// counts. Values below 1 indicate clustering, above 1 regularity. Missing for
// fewer than two points.
func ClarkEvans(points []pattern.Point, w *pattern.Window) Scalar {
	n := len(points)
	if n < 2 {
		return Missing()
	}

	var sumNN float64
	for i, p := range points {
		nearest := math.Inf(1)
		for j, q := range points {
			if i == j {
				continue
			}
			if d := p.Dist(q); d < nearest {
				nearest = d
			}
		}
		sumNN += nearest
	}
	observed := sumNN / float64(n)

	nf := float64(n)
	expected := 0.5*math.Sqrt(w.Area()/nf) + (0.0514+0.041/math.Sqrt(nf))*w.Perimeter()/nf
	if expected == 0 {
		return Missing()
	}
	return Value(observed / expected)
}
