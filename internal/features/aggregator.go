package features

import (
	"fmt"
	"sync"

	"github.com/pathomics/histospat-backend-go/internal/areal"
	"github.com/pathomics/histospat-backend-go/internal/functional"
	"github.com/pathomics/histospat-backend-go/internal/pattern"
	"github.com/pathomics/histospat-backend-go/internal/quadrat"
)

// Aggregator binds one typed pattern to its quadrat lattice, adjacency
// structure, functional engine, and the per-pair marked unions, and assembles
// the scalar row and curve set. All statistics are pure functions of these
// inputs, so repeated aggregation of the same pattern is bit-identical.
type Aggregator struct {
	tp     *pattern.TypedPattern
	grid   *quadrat.Grid
	adj    *quadrat.Adjacency
	engine *functional.Engine
	unions map[[2]pattern.CellType]*pattern.MarkedUnion
}

// NewAggregator builds the lattice, the queen structure and the functional
// engine for a pattern, validating configuration before any computation.
func NewAggregator(tp *pattern.TypedPattern, gridSize int, opts functional.Options) (*Aggregator, error) {
	grid, err := quadrat.NewGrid(tp, gridSize)
	if err != nil {
		return nil, err
	}
	engine, err := functional.NewEngine(tp.Window(), opts)
	if err != nil {
		return nil, err
	}

	unions := make(map[[2]pattern.CellType]*pattern.MarkedUnion, len(pattern.Pairs()))
	for _, pr := range pattern.Pairs() {
		mu, err := pattern.NewMarkedUnion(tp, pr[0], pr[1])
		if err != nil {
			return nil, err
		}
		unions[pr] = mu
	}

	return &Aggregator{
		tp:     tp,
		grid:   grid,
		adj:    quadrat.QueenAdjacency(gridSize),
		engine: engine,
		unions: unions,
	}, nil
}

// Engine returns the aggregator's functional engine
func (a *Aggregator) Engine() *functional.Engine {
	return a.engine
}

// ArealRow computes the full scalar suite and assembles it in the fixed
// registry order with per-type and per-pair key suffixes
// (MoranI.Tumor, Jaccard.TumorStroma, ...).
func (a *Aggregator) ArealRow() *Row {
	row := newRow(64)
	for _, spec := range arealRegistry {
		for _, entry := range a.computeSpec(spec) {
			row.append(entry.Key, entry.Value)
		}
	}
	return row
}

// ArealRowParallel computes the same row with one goroutine per registry
// statistic. Every statistic is independent; the only synchronization point
// is the final ordered assembly.
func (a *Aggregator) ArealRowParallel() *Row {
	segments := make([][]Entry, len(arealRegistry))
	var wg sync.WaitGroup
	for i, spec := range arealRegistry {
		wg.Add(1)
		go func(i int, spec arealSpec) {
			defer wg.Done()
			segments[i] = a.computeSpec(spec)
		}(i, spec)
	}
	wg.Wait()

	row := newRow(64)
	for _, segment := range segments {
		for _, entry := range segment {
			row.append(entry.Key, entry.Value)
		}
	}
	return row
}

// computeSpec expands one registry statistic into its ordered entries
func (a *Aggregator) computeSpec(spec arealSpec) []Entry {
	switch spec.kind {
	case perType:
		entries := make([]Entry, 0, len(pattern.Types()))
		for _, t := range pattern.Types() {
			entries = append(entries, Entry{
				Key:   spec.name + "." + t.String(),
				Value: spec.typeFn(a, t),
			})
		}
		return entries
	case perPair:
		entries := make([]Entry, 0, len(pattern.Pairs()))
		for _, pr := range pattern.Pairs() {
			entries = append(entries, Entry{
				Key:   spec.name + "." + pr[0].String() + pr[1].String(),
				Value: spec.pairFn(a, pr[0], pr[1]),
			})
		}
		return entries
	case joins:
		jc := areal.MajorityJoinCounts(a.grid, a.adj)
		entries := make([]Entry, 0, len(pattern.Types())+len(pattern.Pairs()))
		for _, t := range pattern.Types() {
			entries = append(entries, Entry{
				Key:   "JoinCountSame." + t.String(),
				Value: jc.Same[t],
			})
		}
		for _, pr := range pattern.Pairs() {
			entries = append(entries, Entry{
				Key:   "JoinCount." + pr[0].String() + pr[1].String(),
				Value: jc.Cross[pr],
			})
		}
		return entries
	}
	return nil
}

// Curves computes the requested functional families, single families per
// type and cross families per pair, keyed by the curve name
// (K.Tumor, KCross.TumorStroma, ...). Curves with unmet minimum point counts
// come back entirely missing, never absent.
func (a *Aggregator) Curves(families []Family) (map[string]functional.Curve, error) {
	out := make(map[string]functional.Curve)
	for _, f := range families {
		if int(f) < 0 || int(f) >= len(familyRegistry) {
			return nil, fmt.Errorf("features: unknown functional family %d", f)
		}
		spec := familyRegistry[f]
		if spec.cross {
			for _, pr := range pattern.Pairs() {
				c := spec.pair(a.engine, a.tp, a.unions[pr])
				out[c.Name] = c
			}
			continue
		}
		for _, t := range pattern.Types() {
			c := spec.single(a.engine, a.tp, t)
			out[c.Name] = c
		}
	}
	return out, nil
}

// CurvesParallel computes the requested families with one goroutine per
// family. Results are identical to Curves.
func (a *Aggregator) CurvesParallel(families []Family) (map[string]functional.Curve, error) {
	for _, f := range families {
		if int(f) < 0 || int(f) >= len(familyRegistry) {
			return nil, fmt.Errorf("features: unknown functional family %d", f)
		}
	}

	partial := make([]map[string]functional.Curve, len(families))
	var wg sync.WaitGroup
	for i, f := range families {
		wg.Add(1)
		go func(i int, f Family) {
			defer wg.Done()
			m, _ := a.Curves([]Family{f})
			partial[i] = m
		}(i, f)
	}
	wg.Wait()

	out := make(map[string]functional.Curve)
	for _, m := range partial {
		for k, c := range m {
			out[k] = c
		}
	}
	return out, nil
}
