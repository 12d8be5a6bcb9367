package functional

import (
	"math"

	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// J calculates van Lieshout and Baddeley's J function for one type,
// J(r) = (1−G(r)) / (1−F(r)). Samples where 1−F(r) = 0 (or where G or F is
// undefined) are NaN; the curve is entirely missing when G or F is.
func (e *Engine) J(tp *pattern.TypedPattern, t pattern.CellType) Curve {
	name := "J." + t.String()
	g := e.G(tp, t)
	f := e.EmptySpaceF(tp, t)
	return jRatio(name, e.r, g, f)
}

// JCross calculates the cross-type J on a marked union, combining the
// cross-type G with the empty-space function of the second mark.
func (e *Engine) JCross(mu *pattern.MarkedUnion) Curve {
	name := "JCross." + mu.A.String() + mu.B.String()
	g := e.GCross(mu)
	f := e.emptySpace(name, mu.PointsB())
	return jRatio(name, e.r, g, f)
}

// jRatio assembles (1−G)/(1−F) with per-sample NaN where the denominator
// vanishes
func jRatio(name string, r []float64, g, f Curve) Curve {
	if !g.Defined || !f.Defined {
		return missingCurve(name, r)
	}
	values := make([]float64, len(r))
	for k := range r {
		den := 1 - f.Value[k]
		if den == 0 || math.IsNaN(den) || math.IsNaN(g.Value[k]) {
			values[k] = math.NaN()
			continue
		}
		values[k] = (1 - g.Value[k]) / den
	}
	return newCurve(name, r, values)
}

// L calculates Besag's variance-stabilized L(r) = sqrt(K(r)/π); under the
// Poisson reference L(r) = r. Inherits K's undefined cases.
func (e *Engine) L(tp *pattern.TypedPattern, t pattern.CellType) Curve {
	name := "L." + t.String()
	k := e.K(tp, t)
	if !k.Defined {
		return missingCurve(name, e.r)
	}
	return lTransform(name, e.r, k)
}

// LCross calculates the cross-type L from the cross-type K
func (e *Engine) LCross(mu *pattern.MarkedUnion) Curve {
	name := "LCross." + mu.A.String() + mu.B.String()
	k := e.KCross(mu)
	if !k.Defined {
		return missingCurve(name, e.r)
	}
	return lTransform(name, e.r, k)
}

func lTransform(name string, r []float64, k Curve) Curve {
	values := make([]float64, len(r))
	for i, v := range k.Value {
		values[i] = math.Sqrt(v / math.Pi)
	}
	return newCurve(name, r, values)
}
