package areal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathomics/histospat-backend-go/internal/areal"
	"github.com/pathomics/histospat-backend-go/internal/pattern"
	"github.com/pathomics/histospat-backend-go/internal/quadrat"
)

func scaled(v []int, k int) []int {
	out := make([]int, len(v))
	for i, c := range v {
		out[i] = c * k
	}
	return out
}

func TestIdenticalVectorsGiveUnitSimilarity(t *testing.T) {
	a := []int{3, 0, 1, 4, 0, 0, 2, 5}
	b := []int{3, 0, 1, 4, 0, 0, 2, 5}

	for name, s := range map[string]areal.Scalar{
		"Jaccard":       areal.Jaccard(a, b),
		"Dice":          areal.Dice(a, b),
		"Cosine":        areal.Cosine(a, b),
		"MorisitaHorn":  areal.MorisitaHorn(a, b),
		"Bhattacharyya": areal.Bhattacharyya(a, b),
	} {
		require.True(t, s.Valid, name)
		assert.InDelta(t, 1.0, s.Float64, 1e-12, name)
	}
}

func TestAllZeroVectorGivesMissing(t *testing.T) {
	zero := make([]int, 8)
	other := []int{1, 0, 2, 0, 3, 0, 4, 0}

	assert.False(t, areal.Jaccard(zero, other).Valid)
	assert.False(t, areal.Dice(zero, other).Valid)
	assert.False(t, areal.Cosine(zero, other).Valid)
	assert.False(t, areal.MorisitaHorn(zero, other).Valid)
	assert.False(t, areal.Bhattacharyya(zero, other).Valid)

	// argument order must not matter
	assert.False(t, areal.Jaccard(other, zero).Valid)
	assert.False(t, areal.Dice(other, zero).Valid)

	// both empty is missing too, never 1.0 from shared emptiness
	assert.False(t, areal.Jaccard(zero, zero).Valid)
}

func TestSimilarityScaleInvariance(t *testing.T) {
	a := []int{2, 0, 5, 1, 0, 3}
	b := []int{1, 4, 0, 2, 0, 6}

	for name, fn := range map[string]func(x, y []int) areal.Scalar{
		"Jaccard": areal.Jaccard,
		"Dice":    areal.Dice,
		"Cosine":  areal.Cosine,
	} {
		base := fn(a, b)
		big := fn(scaled(a, 7), scaled(b, 7))
		require.True(t, base.Valid, name)
		require.True(t, big.Valid, name)
		assert.InDelta(t, base.Float64, big.Float64, 1e-12, name)
	}
}

func TestMaskingIgnoresSharedEmptyCells(t *testing.T) {
	// identical on occupied cells, padded with shared empty cells
	a := []int{2, 3, 0, 0, 0, 0, 0, 0}
	b := []int{2, 3, 0, 0, 0, 0, 0, 0}
	padded := areal.Jaccard(a, b)
	require.True(t, padded.Valid)
	assert.InDelta(t, 1.0, padded.Float64, 1e-12)

	// a disjoint pair stays dissimilar no matter how much shared emptiness
	c := []int{4, 0, 0, 0, 0, 0, 0, 0}
	d := []int{0, 4, 0, 0, 0, 0, 0, 0}
	disjoint := areal.Cosine(c, d)
	require.True(t, disjoint.Valid)
	assert.InDelta(t, 0.0, disjoint.Float64, 1e-12)
}

func TestMoranI(t *testing.T) {
	adj := quadrat.QueenAdjacency(4)

	constant := []int{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	assert.False(t, areal.MoranI(constant, adj).Valid, "zero variance is missing")

	// left half loaded, right half empty: strong positive autocorrelation
	clustered := []int{
		9, 8, 0, 0,
		9, 9, 0, 0,
		8, 9, 0, 0,
		9, 8, 0, 0,
	}
	i := areal.MoranI(clustered, adj)
	require.True(t, i.Valid)
	assert.Greater(t, i.Float64, 0.0)
}

func TestGearyC(t *testing.T) {
	adj := quadrat.QueenAdjacency(4)

	constant := make([]int, 16)
	assert.False(t, areal.GearyC(constant, adj).Valid)

	clustered := []int{
		9, 8, 0, 0,
		9, 9, 0, 0,
		8, 9, 0, 0,
		9, 8, 0, 0,
	}
	c := areal.GearyC(clustered, adj)
	require.True(t, c.Valid)
	// positive autocorrelation pushes Geary's C below 1
	assert.Less(t, c.Float64, 1.0)
}

func TestLeeL(t *testing.T) {
	adj := quadrat.QueenAdjacency(4)
	a := []int{
		9, 8, 0, 0,
		9, 9, 0, 0,
		8, 9, 0, 0,
		9, 8, 0, 0,
	}

	same := areal.LeeL(a, a, adj)
	require.True(t, same.Valid)
	assert.Greater(t, same.Float64, 0.0)

	constant := make([]int, 16)
	assert.False(t, areal.LeeL(a, constant, adj).Valid, "zero variance partner is missing")
}

func TestVMRAndChiSquare(t *testing.T) {
	assert.False(t, areal.VMR(make([]int, 9)).Valid, "zero mean is missing")
	assert.False(t, areal.ChiSquare(make([]int, 9)).Valid)

	constant := []int{4, 4, 4, 4}
	vmr := areal.VMR(constant)
	require.True(t, vmr.Valid)
	assert.InDelta(t, 0.0, vmr.Float64, 1e-12)

	chi := areal.ChiSquare(constant)
	require.True(t, chi.Valid)
	assert.InDelta(t, 0.0, chi.Float64, 1e-12)
}

func TestClarkEvans(t *testing.T) {
	w := pattern.UnitSquare()

	assert.False(t, areal.ClarkEvans(nil, w).Valid)
	assert.False(t, areal.ClarkEvans([]pattern.Point{{X: 0.5, Y: 0.5}}, w).Valid)

	// a regular lattice is more dispersed than random: index above 1
	var lattice []pattern.Point
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			lattice = append(lattice, pattern.Point{
				X: 0.1 + 0.2*float64(i),
				Y: 0.1 + 0.2*float64(j),
			})
		}
	}
	ce := areal.ClarkEvans(lattice, w)
	require.True(t, ce.Valid)
	assert.Greater(t, ce.Float64, 1.0)

	// a tight clump sits well below 1
	var clump []pattern.Point
	for i := 0; i < 25; i++ {
		clump = append(clump, pattern.Point{
			X: 0.5 + 0.001*float64(i),
			Y: 0.5,
		})
	}
	cc := areal.ClarkEvans(clump, w)
	require.True(t, cc.Valid)
	assert.Less(t, cc.Float64, 1.0)
}

func TestMajorityJoinCounts(t *testing.T) {
	// 2x2 lattice: tumor occupies the bottom row, stroma the top row
	tp := pattern.NewTypedPattern([]pattern.Point{
		{X: 0.25, Y: 0.25, Type: pattern.Tumor},
		{X: 0.75, Y: 0.25, Type: pattern.Tumor},
		{X: 0.25, Y: 0.75, Type: pattern.Stroma},
		{X: 0.75, Y: 0.75, Type: pattern.Stroma},
	})
	g, err := quadrat.NewGrid(tp, 2)
	require.NoError(t, err)
	adj := quadrat.QueenAdjacency(2)

	jc := areal.MajorityJoinCounts(g, adj)

	require.True(t, jc.Same[pattern.Tumor].Valid)
	assert.Equal(t, 1.0, jc.Same[pattern.Tumor].Float64)
	assert.Equal(t, 1.0, jc.Same[pattern.Stroma].Float64)
	assert.Equal(t, 0.0, jc.Same[pattern.Lymphocyte].Float64)

	cross := jc.Cross[[2]pattern.CellType{pattern.Tumor, pattern.Stroma}]
	require.True(t, cross.Valid)
	assert.Equal(t, 4.0, cross.Float64, "queen joins across the two rows")
}

func TestMajorityJoinCountsEmptyLattice(t *testing.T) {
	tp := pattern.NewTypedPattern(nil)
	g, err := quadrat.NewGrid(tp, 2)
	require.NoError(t, err)

	jc := areal.MajorityJoinCounts(g, quadrat.QueenAdjacency(2))
	assert.False(t, jc.Same[pattern.Tumor].Valid)
	assert.False(t, jc.Cross[[2]pattern.CellType{pattern.Tumor, pattern.Stroma}].Valid)
}

func TestScalarJSON(t *testing.T) {
	missing, err := areal.Missing().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(missing))

	value, err := areal.Value(0.5).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "0.5", string(value))
}
