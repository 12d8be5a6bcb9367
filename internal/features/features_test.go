package features_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathomics/histospat-backend-go/internal/features"
	"github.com/pathomics/histospat-backend-go/internal/functional"
	"github.com/pathomics/histospat-backend-go/internal/pattern"
)

func testPattern() *pattern.TypedPattern {
	var pts []pattern.Point
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			t := pattern.Tumor
			switch {
			case (i+j)%3 == 1:
				t = pattern.Stroma
			case (i+j)%3 == 2:
				t = pattern.Lymphocyte
			}
			pts = append(pts, pattern.Point{
				X:    0.0625 + 0.125*float64(i),
				Y:    0.0625 + 0.125*float64(j),
				Type: t,
			})
		}
	}
	return pattern.NewTypedPattern(pts)
}

func newAggregator(t *testing.T) *features.Aggregator {
	t.Helper()
	agg, err := features.NewAggregator(testPattern(), 20, functional.Options{GridLength: 50})
	require.NoError(t, err)
	return agg
}

func TestArealRowSchema(t *testing.T) {
	row := newAggregator(t).ArealRow()

	keys := row.Keys()
	// 5 per-type statistics × 3 types + 6 per-pair × 3 pairs + join counts (3+3)
	assert.Len(t, keys, 39)

	assert.Equal(t, "MoranI.Tumor", keys[0])
	assert.Equal(t, "MoranI.Stroma", keys[1])
	assert.Equal(t, "MoranI.Lymphocyte", keys[2])
	assert.Equal(t, "GearyC.Tumor", keys[3])
	assert.Equal(t, "LeeL.TumorStroma", keys[6])
	assert.Equal(t, "JoinCountSame.Tumor", keys[33])
	assert.Equal(t, "JoinCount.StromaLymphocyte", keys[38])

	for _, k := range keys {
		_, ok := row.Get(k)
		assert.True(t, ok, k)
	}
}

func TestArealRowIdempotent(t *testing.T) {
	agg := newAggregator(t)
	first := agg.ArealRow()
	second := agg.ArealRow()
	assert.Equal(t, first.Entries(), second.Entries(), "repeat aggregation is bit-identical")
}

func TestArealRowParallelMatchesSerial(t *testing.T) {
	agg := newAggregator(t)
	serial := agg.ArealRow()
	parallel := agg.ArealRowParallel()
	assert.Equal(t, serial.Entries(), parallel.Entries())
}

func TestCurvesAllFamilies(t *testing.T) {
	agg := newAggregator(t)
	curves, err := agg.Curves(features.AllFamilies())
	require.NoError(t, err)

	// 9 single families × 3 types + 8 cross families × 3 pairs
	assert.Len(t, curves, 51)

	k, ok := curves["K.Tumor"]
	require.True(t, ok)
	assert.Len(t, k.Value, 50)

	_, ok = curves["KCross.TumorStroma"]
	assert.True(t, ok)
	_, ok = curves["MarkConnection.StromaLymphocyte"]
	assert.True(t, ok)
}

func TestCurvesParallelMatchesSerial(t *testing.T) {
	agg := newAggregator(t)
	families := []features.Family{features.FamilyK, features.FamilyG, features.FamilyKCross}

	serial, err := agg.Curves(families)
	require.NoError(t, err)
	parallel, err := agg.CurvesParallel(families)
	require.NoError(t, err)

	require.Equal(t, len(serial), len(parallel))
	for name, c := range serial {
		p, ok := parallel[name]
		require.True(t, ok, name)
		assert.Equal(t, c.Value, p.Value, name)
	}
}

func TestMissingCurveStillAssembled(t *testing.T) {
	tp := pattern.NewTypedPattern([]pattern.Point{
		{X: 0.2, Y: 0.3, Type: pattern.Tumor},
		{X: 0.7, Y: 0.6, Type: pattern.Tumor},
	})
	agg, err := features.NewAggregator(tp, 20, functional.Options{GridLength: 50})
	require.NoError(t, err)

	curves, err := agg.Curves([]features.Family{features.FamilyK})
	require.NoError(t, err)

	stroma, ok := curves["K.Stroma"]
	require.True(t, ok, "empty types still yield a curve object")
	assert.False(t, stroma.Defined)
	assert.Len(t, stroma.Value, 50)
}

func TestParseFamily(t *testing.T) {
	for _, f := range features.AllFamilies() {
		parsed, ok := features.ParseFamily(f.String())
		require.True(t, ok, f.String())
		assert.Equal(t, f, parsed)
	}

	_, ok := features.ParseFamily("Ripley")
	assert.False(t, ok)
}

type fakeTopology struct {
	rows map[string]float64
}

func (f fakeTopology) Features(_ *pattern.TypedPattern) (map[string]float64, error) {
	return f.rows, nil
}

func TestAppendTopology(t *testing.T) {
	agg := newAggregator(t)
	row := agg.ArealRow()
	base := row.Len()

	provider := fakeTopology{rows: map[string]float64{
		"PH.Betti1.Tumor": 4,
		"PH.Betti0.Tumor": 12,
	}}
	require.NoError(t, features.AppendTopology(row, testPattern(), provider))

	keys := row.Keys()
	require.Len(t, keys, base+2)
	// collaborator keys are appended after the areal row, sorted
	assert.Equal(t, "PH.Betti0.Tumor", keys[base])
	assert.Equal(t, "PH.Betti1.Tumor", keys[base+1])

	v, ok := row.Get("PH.Betti1.Tumor")
	require.True(t, ok)
	assert.Equal(t, 4.0, v.Float64)
}
