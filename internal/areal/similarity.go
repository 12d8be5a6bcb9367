package areal

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// maskBothZero drops cells where both counts are zero and returns the
// surviving cells as float vectors. The masking prevents shared emptiness
// from inflating similarity between sparse patterns.
func maskBothZero(a, b []int) ([]float64, []float64) {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if a[i] == 0 && b[i] == 0 {
			continue
		}
		x = append(x, float64(a[i]))
		y = append(y, float64(b[i]))
	}
	return x, y
}

// Jaccard calculates the continuous Jaccard similarity of two count vectors
// after masking cells where both are zero. Missing when nothing survives the
// mask, when either masked vector is all zeros, or when the denominator
// vanishes.
func Jaccard(a, b []int) Scalar {
	x, y := maskBothZero(a, b)
	if len(x) == 0 {
		return Missing()
	}
	dot := floats.Dot(x, y)
	na2 := floats.Dot(x, x)
	nb2 := floats.Dot(y, y)
	if na2 == 0 || nb2 == 0 {
		return Missing()
	}
	den := na2 + nb2 - dot
	if den == 0 {
		return Missing()
	}
	return Value(dot / den)
}

// Dice calculates the continuous Dice coefficient of two count vectors after
// both-zero masking. Missing when nothing survives the mask or when either
// masked vector is all zeros.
func Dice(a, b []int) Scalar {
	x, y := maskBothZero(a, b)
	if len(x) == 0 {
		return Missing()
	}
	na2 := floats.Dot(x, x)
	nb2 := floats.Dot(y, y)
	if na2 == 0 || nb2 == 0 {
		return Missing()
	}
	return Value(2 * floats.Dot(x, y) / (na2 + nb2))
}

// Cosine calculates the cosine similarity of two count vectors after
// both-zero masking. Missing when either masked vector has zero norm.
func Cosine(a, b []int) Scalar {
	x, y := maskBothZero(a, b)
	if len(x) == 0 {
		return Missing()
	}
	na := floats.Norm(x, 2)
	nb := floats.Norm(y, 2)
	if na == 0 || nb == 0 {
		return Missing()
	}
	return Value(floats.Dot(x, y) / (na * nb))
}

// MorisitaHorn calculates the Morisita–Horn overlap of two count vectors on
// their normalized cell distributions. Missing when either vector sums to
// zero.
func MorisitaHorn(a, b []int) Scalar {
	p1, ok1 := normalizeCounts(a)
	p2, ok2 := normalizeCounts(b)
	if !ok1 || !ok2 {
		return Missing()
	}
	var cross, s1, s2 float64
	for i := range p1 {
		cross += p1[i] * p2[i]
		s1 += p1[i] * p1[i]
		s2 += p2[i] * p2[i]
	}
	if s1+s2 == 0 {
		return Missing()
	}
	return Value(2 * cross / (s1 + s2))
}

// Bhattacharyya calculates the Bhattacharyya coefficient of two count vectors
// on their normalized cell distributions. Missing when either vector sums to
// zero.
func Bhattacharyya(a, b []int) Scalar {
	p1, ok1 := normalizeCounts(a)
	p2, ok2 := normalizeCounts(b)
	if !ok1 || !ok2 {
		return Missing()
	}
	var sum float64
	for i := range p1 {
		sum += math.Sqrt(p1[i] * p2[i])
	}
	return Value(sum)
}

// normalizeCounts converts a count vector to a probability distribution.
// ok is false when the vector sums to zero.
func normalizeCounts(counts []int) ([]float64, bool) {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return nil, false
	}
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c) / float64(total)
	}
	return p, true
}
