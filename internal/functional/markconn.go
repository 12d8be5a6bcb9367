package functional

import (
	"math"

	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// MarkConnection calculates the mark connection function of a type pair on
// its marked union: the probability that a pair of points at distance r
// carries the two marks,
//
//	p_ab(r) = 2·λa·λb·g_ab(r) / (λ²·g(r))
//
// where g is the pair correlation of the unmarked superposition. Samples
// where the superposition pcf is zero or undefined are NaN; the curve is
// entirely missing when either mark has no points.
func (e *Engine) MarkConnection(mu *pattern.MarkedUnion) Curve {
	name := "MarkConnection." + mu.A.String() + mu.B.String()
	na, nb := mu.CountA(), mu.CountB()
	if na == 0 || nb == 0 {
		return missingCurve(name, e.r)
	}

	cross := e.PairCorrelationCross(mu)
	union := e.unionPairCorrelation(mu)
	if !cross.Defined || !union.Defined {
		return missingCurve(name, e.r)
	}

	area := e.win.Area()
	la := float64(na) / area
	lb := float64(nb) / area
	lambda := float64(na+nb) / area

	values := make([]float64, len(e.r))
	for k := range e.r {
		g := union.Value[k]
		if g == 0 || math.IsNaN(g) || math.IsNaN(cross.Value[k]) {
			values[k] = math.NaN()
			continue
		}
		values[k] = 2 * la * lb * cross.Value[k] / (lambda * lambda * g)
	}
	return newCurve(name, e.r, values)
}

// IFunction calculates van Lieshout's multitype I function of a type pair:
// the intensity-weighted single-type J functions minus the J of the
// superposition. Zero under mark independence; entirely missing when either
// mark has fewer than two points.
func (e *Engine) IFunction(tp *pattern.TypedPattern, mu *pattern.MarkedUnion) Curve {
	name := "IFunction." + mu.A.String() + mu.B.String()
	na, nb := mu.CountA(), mu.CountB()
	if na < 2 || nb < 2 {
		return missingCurve(name, e.r)
	}

	ja := e.J(tp, mu.A)
	jb := e.J(tp, mu.B)
	jUnion := e.unionJ(mu)
	if !ja.Defined || !jb.Defined || !jUnion.Defined {
		return missingCurve(name, e.r)
	}

	pa := float64(na) / float64(na+nb)
	pb := float64(nb) / float64(na+nb)
	values := make([]float64, len(e.r))
	for k := range e.r {
		values[k] = pa*ja.Value[k] + pb*jb.Value[k] - jUnion.Value[k]
	}
	return newCurve(name, e.r, values)
}

// unionPairCorrelation runs the single-type pcf estimator on the unmarked
// superposition of the union's points
func (e *Engine) unionPairCorrelation(mu *pattern.MarkedUnion) Curve {
	all := mu.All()
	if len(all) < 2 {
		return missingCurve("PCF.union", e.r)
	}
	h := e.bandwidth(float64(len(all)))
	sums := e.kernelPairSums(all, all, true, h)
	scale := e.win.Area() / (2 * math.Pi * float64(len(all)) * float64(len(all)-1))
	return newCurve("PCF.union", e.r, e.pcfValues(sums, scale))
}

// unionJ runs the single-type J estimator on the unmarked superposition
func (e *Engine) unionJ(mu *pattern.MarkedUnion) Curve {
	all := mu.All()
	if len(all) < 2 {
		return missingCurve("J.union", e.r)
	}

	nn := make([]float64, len(all))
	for i, p := range all {
		nearest := math.Inf(1)
		for j, q := range all {
			if i == j {
				continue
			}
			if d := p.Dist(q); d < nearest {
				nearest = d
			}
		}
		nn[i] = nearest
	}
	g := e.reducedSampleCDF("G.union", all, nn)
	f := e.emptySpace("F.union", all)
	return jRatio("J.union", e.r, g, f)
}
