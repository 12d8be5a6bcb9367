package functional_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathomics/histospat-backend-go/internal/functional"
	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

// latticePattern builds a 10×10 regular lattice of tumor points with
// spacing 0.1, inset from the boundary
func latticePattern() *pattern.TypedPattern {
	var pts []pattern.Point
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			pts = append(pts, pattern.Point{
				X:    0.05 + 0.1*float64(i),
				Y:    0.05 + 0.1*float64(j),
				Type: pattern.Tumor,
			})
		}
	}
	return pattern.NewTypedPattern(pts)
}

// clusterPattern builds a tight clump of tumor points around the center
func clusterPattern(n int) *pattern.TypedPattern {
	var pts []pattern.Point
	for i := 0; i < n; i++ {
		pts = append(pts, pattern.Point{
			X:    0.5 + 0.0003*float64(i%6),
			Y:    0.5 + 0.0003*float64(i/6),
			Type: pattern.Tumor,
		})
	}
	return pattern.NewTypedPattern(pts)
}

func newEngine(t *testing.T) *functional.Engine {
	t.Helper()
	e, err := functional.NewEngine(pattern.UnitSquare(), functional.Options{})
	require.NoError(t, err)
	return e
}

func TestEngineDefaults(t *testing.T) {
	e := newEngine(t)
	r := e.R()
	assert.Len(t, r, 500)
	assert.Equal(t, 0.0, r[0])
	assert.InDelta(t, 0.25, e.RMax(), 1e-12)
}

func TestEngineOptionValidation(t *testing.T) {
	w := pattern.UnitSquare()

	_, err := functional.NewEngine(w, functional.Options{GridLength: 1})
	assert.ErrorIs(t, err, functional.ErrGridLength)

	_, err = functional.NewEngine(w, functional.Options{Bandwidth: -0.1})
	assert.ErrorIs(t, err, functional.ErrBandwidth)

	_, err = functional.NewEngine(w, functional.Options{SectorStart: 2, SectorEnd: 1})
	assert.ErrorIs(t, err, functional.ErrSector)

	_, err = functional.NewEngine(w, functional.Options{RMaxFraction: -1})
	assert.ErrorIs(t, err, functional.ErrRMax)
}

func TestKMinimumCount(t *testing.T) {
	e := newEngine(t)
	tp := pattern.NewTypedPattern([]pattern.Point{{X: 0.5, Y: 0.5, Type: pattern.Tumor}})

	k := e.K(tp, pattern.Tumor)
	assert.False(t, k.Defined)
	assert.Len(t, k.Value, 500, "missing curve still spans the grid")
	for _, v := range k.Value {
		assert.True(t, math.IsNaN(v))
	}

	empty := e.K(tp, pattern.Stroma)
	assert.False(t, empty.Defined)
}

func TestKRegularitySignature(t *testing.T) {
	e := newEngine(t)
	k := e.K(latticePattern(), pattern.Tumor)
	require.True(t, k.Defined)

	// below the lattice spacing the pattern is emptier than Poisson
	for i, r := range k.R {
		if r <= 0 || r >= 0.09 {
			continue
		}
		assert.LessOrEqual(t, k.Value[i], math.Pi*r*r+1e-9, "r=%v", r)
	}
}

func TestKClusteringSignature(t *testing.T) {
	e := newEngine(t)
	k := e.K(clusterPattern(30), pattern.Tumor)
	require.True(t, k.Defined)

	// at radii covering the whole clump, K vastly exceeds πr²
	for i, r := range k.R {
		if r < 0.02 || r > 0.05 {
			continue
		}
		assert.Greater(t, k.Value[i], math.Pi*r*r, "r=%v", r)
	}
}

func TestLRoundTrip(t *testing.T) {
	e := newEngine(t)
	tp := latticePattern()

	k := e.K(tp, pattern.Tumor)
	l := e.L(tp, pattern.Tumor)
	require.True(t, l.Defined)

	for i := range k.R {
		assert.InDelta(t, math.Sqrt(k.Value[i]/math.Pi), l.Value[i], 1e-12)
	}
}

func TestKScaledLimitAtZero(t *testing.T) {
	e := newEngine(t)
	ks := e.KScaled(latticePattern(), pattern.Tumor)
	require.True(t, ks.Defined)
	assert.Equal(t, 1.0, ks.Value[0], "definitional limit at r=0")
}

func TestKLocalMeanMatchesK(t *testing.T) {
	e := newEngine(t)
	tp := latticePattern()

	k := e.K(tp, pattern.Tumor)
	lm := e.KLocalMean(tp, pattern.Tumor)
	require.True(t, lm.Defined)

	// the mean of per-point contributions is the global estimator
	for i := range k.R {
		assert.InDelta(t, k.Value[i], lm.Value[i], 1e-9)
	}
}

func TestKSectorOnLattice(t *testing.T) {
	e := newEngine(t)
	ks := e.KSector(latticePattern(), pattern.Tumor)
	require.True(t, ks.Defined)
	for _, v := range ks.Value {
		assert.False(t, math.IsNaN(v))
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestGOnLattice(t *testing.T) {
	e := newEngine(t)
	g := e.G(latticePattern(), pattern.Tumor)
	require.True(t, g.Defined)

	for i, r := range g.R {
		if r <= 0.05 && !math.IsNaN(g.Value[i]) {
			assert.Equal(t, 0.0, g.Value[i], "no neighbor below the spacing at r=%v", r)
		}
		if r >= 0.12 && r <= 0.2 && !math.IsNaN(g.Value[i]) {
			assert.Equal(t, 1.0, g.Value[i], "every interior point has a neighbor at the spacing, r=%v", r)
		}
	}
}

func TestGMinimumCount(t *testing.T) {
	e := newEngine(t)
	tp := pattern.NewTypedPattern([]pattern.Point{{X: 0.4, Y: 0.4, Type: pattern.Tumor}})
	assert.False(t, e.G(tp, pattern.Tumor).Defined)
}

func TestJRegularPatternAboveOne(t *testing.T) {
	e := newEngine(t)
	j := e.J(latticePattern(), pattern.Tumor)
	require.True(t, j.Defined)

	// regularity: G stays at 0 below the spacing while empty space grows
	for i, r := range j.R {
		if r < 0.03 || r > 0.05 || math.IsNaN(j.Value[i]) {
			continue
		}
		assert.GreaterOrEqual(t, j.Value[i], 1.0, "r=%v", r)
	}
}

func TestPairCorrelation(t *testing.T) {
	e := newEngine(t)
	pcf := e.PairCorrelation(latticePattern(), pattern.Tumor)
	require.True(t, pcf.Defined)
	assert.True(t, math.IsNaN(pcf.Value[0]), "r=0 is undefined for the pcf")

	tp := pattern.NewTypedPattern([]pattern.Point{{X: 0.1, Y: 0.1, Type: pattern.Tumor}})
	assert.False(t, e.PairCorrelation(tp, pattern.Tumor).Defined)
}

func crossPattern() *pattern.TypedPattern {
	var pts []pattern.Point
	for i := 0; i < 6; i++ {
		pts = append(pts, pattern.Point{X: 0.1 + 0.15*float64(i), Y: 0.45, Type: pattern.Tumor})
		pts = append(pts, pattern.Point{X: 0.1 + 0.15*float64(i), Y: 0.55, Type: pattern.Stroma})
	}
	return pattern.NewTypedPattern(pts)
}

func TestCrossStatistics(t *testing.T) {
	e := newEngine(t)
	tp := crossPattern()
	mu, err := pattern.NewMarkedUnion(tp, pattern.Tumor, pattern.Stroma)
	require.NoError(t, err)

	kc := e.KCross(mu)
	assert.True(t, kc.Defined)

	gc := e.GCross(mu)
	assert.True(t, gc.Defined)

	lc := e.LCross(mu)
	assert.True(t, lc.Defined)

	mc := e.MarkConnection(mu)
	assert.True(t, mc.Defined)

	ifn := e.IFunction(tp, mu)
	assert.True(t, ifn.Defined)
}

func TestCrossMissingWhenOneTypeEmpty(t *testing.T) {
	e := newEngine(t)
	tp := pattern.NewTypedPattern([]pattern.Point{
		{X: 0.2, Y: 0.2, Type: pattern.Tumor},
		{X: 0.8, Y: 0.8, Type: pattern.Tumor},
	})
	mu, err := pattern.NewMarkedUnion(tp, pattern.Tumor, pattern.Stroma)
	require.NoError(t, err)

	assert.False(t, e.KCross(mu).Defined)
	assert.False(t, e.KCrossLocal(mu).Defined)
	assert.False(t, e.GCross(mu).Defined)
	assert.False(t, e.JCross(mu).Defined)
	assert.False(t, e.LCross(mu).Defined)
	assert.False(t, e.PairCorrelationCross(mu).Defined)
	assert.False(t, e.MarkConnection(mu).Defined)
	assert.False(t, e.IFunction(tp, mu).Defined)
}

func TestKCrossSymmetricInCounts(t *testing.T) {
	e := newEngine(t)
	tp := crossPattern()

	ab, err := pattern.NewMarkedUnion(tp, pattern.Tumor, pattern.Stroma)
	require.NoError(t, err)
	ba, err := pattern.NewMarkedUnion(tp, pattern.Stroma, pattern.Tumor)
	require.NoError(t, err)

	kab := e.KCross(ab)
	kba := e.KCross(ba)
	require.True(t, kab.Defined)
	require.True(t, kba.Defined)
	for i := range kab.Value {
		assert.InDelta(t, kab.Value[i], kba.Value[i], 1e-9)
	}
}
