package areal

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pathomics/histospat-backend-go/internal/quadrat"
)

// MoranI calculates global spatial autocorrelation of a count vector under
// binary queen weights. Missing when the vector has zero variance.
func MoranI(counts []int, adj *quadrat.Adjacency) Scalar {
	x := toFloat(counts)
	n := float64(len(x))
	mean := stat.Mean(x, nil)

	var num, s0, den float64
	for i := range x {
		di := x[i] - mean
		den += di * di
		for _, j := range adj.Neighbors(i) {
			num += di * (x[j] - mean)
			s0++
		}
	}
	if den == 0 || s0 == 0 {
		return Missing()
	}
	return Value((n / s0) * (num / den))
}

// GearyC calculates the Geary contiguity ratio of a count vector under
// row-standardized queen weights. Missing when the vector has zero variance.
func GearyC(counts []int, adj *quadrat.Adjacency) Scalar {
	x := toFloat(counts)
	n := float64(len(x))
	mean := stat.Mean(x, nil)

	var num, s0, den float64
	for i := range x {
		di := x[i] - mean
		den += di * di
		deg := float64(adj.Degree(i))
		if deg == 0 {
			continue
		}
		w := 1 / deg
		for _, j := range adj.Neighbors(i) {
			d := x[i] - x[j]
			num += w * d * d
			s0 += w
		}
	}
	if den == 0 || s0 == 0 {
		return Missing()
	}
	return Value(((n - 1) * num) / (2 * s0 * den))
}

// LeeL calculates Lee's bivariate spatial association between two count
// vectors under row-standardized queen weights. Missing when either vector
// has zero variance.
func LeeL(a, b []int, adj *quadrat.Adjacency) Scalar {
	x := toFloat(a)
	y := toFloat(b)
	meanX := stat.Mean(x, nil)
	meanY := stat.Mean(y, nil)

	var num, ssX, ssY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		ssX += dx * dx
		ssY += dy * dy

		neighbors := adj.Neighbors(i)
		if len(neighbors) == 0 {
			continue
		}
		var lagX, lagY float64
		for _, j := range neighbors {
			lagX += x[j] - meanX
			lagY += y[j] - meanY
		}
		w := 1 / float64(len(neighbors))
		num += (w * lagX) * (w * lagY)
	}
	if ssX == 0 || ssY == 0 {
		return Missing()
	}
	// Row-standardized weights make sum-of-row-sums-squared equal n, so the
	// n/Σ(Σw)² factor cancels and only the spatially lagged cross product
	// over the two standard deviations remains.
	return Value(num / (math.Sqrt(ssX) * math.Sqrt(ssY)))
}
