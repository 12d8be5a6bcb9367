// Package features assembles the engine outputs: the areal scalar row in its
// fixed key order, the functional curve set, and the topology-collaborator
// concatenation. Statistic dispatch goes through closed enumerations bound to
// static registries; no statistic is ever resolved by name at runtime.
package features

import (
	"github.com/pathomics/histospat-backend-go/internal/areal"
	"github.com/pathomics/histospat-backend-go/internal/functional"
	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// arealKind distinguishes how an areal statistic expands across the type set
type arealKind int

const (
	perType arealKind = iota // one value per cell type
	perPair                  // one value per unordered type pair
	joins                    // join counts: same-label per type, then cross-label per pair
)

// arealSpec binds one registry entry to its compute function. Exactly one of
// typeFn/pairFn is set according to kind.
type arealSpec struct {
	name   string
	kind   arealKind
	typeFn func(a *Aggregator, t pattern.CellType) areal.Scalar
	pairFn func(a *Aggregator, p, q pattern.CellType) areal.Scalar
}

// arealRegistry enumerates the scalar suite in output order. The row schema
// is this slice expanded per-type/per-pair with name suffixes, and is
// identical for every input.
var arealRegistry = []arealSpec{
	{name: "MoranI", kind: perType, typeFn: func(a *Aggregator, t pattern.CellType) areal.Scalar {
		return areal.MoranI(a.grid.CountVector(t), a.adj)
	}},
	{name: "GearyC", kind: perType, typeFn: func(a *Aggregator, t pattern.CellType) areal.Scalar {
		return areal.GearyC(a.grid.CountVector(t), a.adj)
	}},
	{name: "LeeL", kind: perPair, pairFn: func(a *Aggregator, p, q pattern.CellType) areal.Scalar {
		return areal.LeeL(a.grid.CountVector(p), a.grid.CountVector(q), a.adj)
	}},
	{name: "MorisitaHorn", kind: perPair, pairFn: func(a *Aggregator, p, q pattern.CellType) areal.Scalar {
		return areal.MorisitaHorn(a.grid.CountVector(p), a.grid.CountVector(q))
	}},
	{name: "Bhattacharyya", kind: perPair, pairFn: func(a *Aggregator, p, q pattern.CellType) areal.Scalar {
		return areal.Bhattacharyya(a.grid.CountVector(p), a.grid.CountVector(q))
	}},
	{name: "ClarkEvans", kind: perType, typeFn: func(a *Aggregator, t pattern.CellType) areal.Scalar {
		return areal.ClarkEvans(a.tp.Points(t), a.tp.Window())
	}},
	{name: "VMR", kind: perType, typeFn: func(a *Aggregator, t pattern.CellType) areal.Scalar {
		return areal.VMR(a.grid.CountVector(t))
	}},
	{name: "ChiSquare", kind: perType, typeFn: func(a *Aggregator, t pattern.CellType) areal.Scalar {
		return areal.ChiSquare(a.grid.CountVector(t))
	}},
	{name: "Jaccard", kind: perPair, pairFn: func(a *Aggregator, p, q pattern.CellType) areal.Scalar {
		return areal.Jaccard(a.grid.CountVector(p), a.grid.CountVector(q))
	}},
	{name: "Dice", kind: perPair, pairFn: func(a *Aggregator, p, q pattern.CellType) areal.Scalar {
		return areal.Dice(a.grid.CountVector(p), a.grid.CountVector(q))
	}},
	{name: "Cosine", kind: perPair, pairFn: func(a *Aggregator, p, q pattern.CellType) areal.Scalar {
		return areal.Cosine(a.grid.CountVector(p), a.grid.CountVector(q))
	}},
	{name: "JoinCount", kind: joins},
}

// Family identifies one functional statistic family. The set is closed; the
// API boundary converts request strings through ParseFamily exactly once.
type Family int

const (
	FamilyK Family = iota
	FamilyKLocal
	FamilyKScaled
	FamilyKSector
	FamilyKCross
	FamilyKCrossLocal
	FamilyG
	FamilyGCross
	FamilyF
	FamilyJ
	FamilyJCross
	FamilyL
	FamilyLCross
	FamilyPCF
	FamilyPCFCross
	FamilyMarkConnection
	FamilyIFunction
)

// familySpec binds one family to its engine call. cross families run once
// per type pair on the pair's marked union, single families once per type.
type familySpec struct {
	name   string
	cross  bool
	single func(e *functional.Engine, tp *pattern.TypedPattern, t pattern.CellType) functional.Curve
	pair   func(e *functional.Engine, tp *pattern.TypedPattern, mu *pattern.MarkedUnion) functional.Curve
}

var familyRegistry = [...]familySpec{
	FamilyK: {name: "K", single: (*functional.Engine).K},
	FamilyKLocal: {name: "KLocal", single: func(e *functional.Engine, tp *pattern.TypedPattern, t pattern.CellType) functional.Curve {
		return e.KLocalMean(tp, t)
	}},
	FamilyKScaled: {name: "KScaled", single: (*functional.Engine).KScaled},
	FamilyKSector: {name: "KSector", single: (*functional.Engine).KSector},
	FamilyKCross: {name: "KCross", cross: true, pair: func(e *functional.Engine, _ *pattern.TypedPattern, mu *pattern.MarkedUnion) functional.Curve {
		return e.KCross(mu)
	}},
	FamilyKCrossLocal: {name: "KCrossLocal", cross: true, pair: func(e *functional.Engine, _ *pattern.TypedPattern, mu *pattern.MarkedUnion) functional.Curve {
		return e.KCrossLocal(mu)
	}},
	FamilyG: {name: "G", single: (*functional.Engine).G},
	FamilyGCross: {name: "GCross", cross: true, pair: func(e *functional.Engine, _ *pattern.TypedPattern, mu *pattern.MarkedUnion) functional.Curve {
		return e.GCross(mu)
	}},
	FamilyF: {name: "F", single: (*functional.Engine).EmptySpaceF},
	FamilyJ: {name: "J", single: (*functional.Engine).J},
	FamilyJCross: {name: "JCross", cross: true, pair: func(e *functional.Engine, _ *pattern.TypedPattern, mu *pattern.MarkedUnion) functional.Curve {
		return e.JCross(mu)
	}},
	FamilyL:      {name: "L", single: (*functional.Engine).L},
	FamilyLCross: {name: "LCross", cross: true, pair: func(e *functional.Engine, _ *pattern.TypedPattern, mu *pattern.MarkedUnion) functional.Curve {
		return e.LCross(mu)
	}},
	FamilyPCF: {name: "PCF", single: (*functional.Engine).PairCorrelation},
	FamilyPCFCross: {name: "PCFCross", cross: true, pair: func(e *functional.Engine, _ *pattern.TypedPattern, mu *pattern.MarkedUnion) functional.Curve {
		return e.PairCorrelationCross(mu)
	}},
	FamilyMarkConnection: {name: "MarkConnection", cross: true, pair: func(e *functional.Engine, _ *pattern.TypedPattern, mu *pattern.MarkedUnion) functional.Curve {
		return e.MarkConnection(mu)
	}},
	FamilyIFunction: {name: "IFunction", cross: true, pair: func(e *functional.Engine, tp *pattern.TypedPattern, mu *pattern.MarkedUnion) functional.Curve {
		return e.IFunction(tp, mu)
	}},
}

// String returns the family's registry name
func (f Family) String() string {
	if int(f) < 0 || int(f) >= len(familyRegistry) {
		return "Unknown"
	}
	return familyRegistry[f].name
}

// AllFamilies returns every functional family in registry order
func AllFamilies() []Family {
	out := make([]Family, len(familyRegistry))
	for i := range familyRegistry {
		out[i] = Family(i)
	}
	return out
}

// ParseFamily converts an external family name to its enum value. This is the
// only string-to-statistic conversion in the system, performed once at the
// API boundary.
func ParseFamily(name string) (Family, bool) {
	for i := range familyRegistry {
		if familyRegistry[i].name == name {
			return Family(i), true
		}
	}
	return 0, false
}
