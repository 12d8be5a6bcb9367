package areal

import (
	"github.com/pathomics/histospat-backend-go/internal/pattern"
	"github.com/pathomics/histospat-backend-go/internal/quadrat"
)

// JoinCounts holds join-count statistics over the majority-labeled lattice:
// Same counts adjacent cell pairs sharing one label, Cross counts adjacent
// cell pairs carrying the two labels of a pair.
type JoinCounts struct {
	Same  map[pattern.CellType]Scalar
	Cross map[[2]pattern.CellType]Scalar
}

// MajorityJoinCounts assigns each lattice cell its majority type (argmax of
// per-cell counts, ties broken by the fixed CellType order; empty cells are
// left unlabeled and excluded) and tallies adjacent same-label and
// cross-label cell pairs via the queen structure. All counts are missing when
// no cell receives a label.
func MajorityJoinCounts(g *quadrat.Grid, adj *quadrat.Adjacency) JoinCounts {
	labels := majorityLabels(g)

	result := JoinCounts{
		Same:  make(map[pattern.CellType]Scalar, len(pattern.Types())),
		Cross: make(map[[2]pattern.CellType]Scalar, len(pattern.Pairs())),
	}

	labeled := false
	for _, l := range labels {
		if l >= 0 {
			labeled = true
			break
		}
	}
	if !labeled {
		for _, t := range pattern.Types() {
			result.Same[t] = Missing()
		}
		for _, pr := range pattern.Pairs() {
			result.Cross[pr] = Missing()
		}
		return result
	}

	same := make(map[pattern.CellType]float64)
	cross := make(map[[2]pattern.CellType]float64)
	for i, li := range labels {
		if li < 0 {
			continue
		}
		for _, j := range adj.Neighbors(i) {
			if j <= i {
				continue // each unordered pair once
			}
			lj := labels[j]
			if lj < 0 {
				continue
			}
			if li == lj {
				same[pattern.CellType(li)]++
				continue
			}
			cross[orderPair(pattern.CellType(li), pattern.CellType(lj))]++
		}
	}

	for _, t := range pattern.Types() {
		result.Same[t] = Value(same[t])
	}
	for _, pr := range pattern.Pairs() {
		result.Cross[pr] = Value(cross[pr])
	}
	return result
}

// majorityLabels returns the per-cell majority type as an int, -1 for empty
// cells. Ties resolve to the lowest CellType value.
func majorityLabels(g *quadrat.Grid) []int {
	labels := make([]int, g.Cells())
	for cell := range labels {
		best := -1
		bestCount := 0
		for _, t := range pattern.Types() {
			c := g.CellCount(t, cell)
			if c > bestCount {
				bestCount = c
				best = int(t)
			}
		}
		labels[cell] = best
	}
	return labels
}

func orderPair(a, b pattern.CellType) [2]pattern.CellType {
	if b < a {
		a, b = b, a
	}
	return [2]pattern.CellType{a, b}
}
