package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microplate/pkg/domain"
	"microplate/pkg/validation"
)

func TestPrimitives(t *testing.T) {
	xs := []float64{4, 1, 3, 2}
	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"sum", Sum(xs), 10},
		{"mean", Mean(xs), 2.5},
		{"min", Min(xs), 1},
		{"max", Max(xs), 4},
		{"median even", Median(xs), 2.5},
		{"median odd", Median([]float64{5, 1, 3}), 3},
		{"population variance", PopulationVariance(xs), 1.25},
		{"sample variance", SampleVariance(xs), 5.0 / 3.0},
		{"std dev", StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 2},
		{"sample std dev", SampleStdDev([]float64{1, 3}), math.Sqrt2},
		{"p0", Percentile(xs, 0), 1},
		{"p100", Percentile(xs, 100), 4},
		{"p25", Percentile(xs, 25), 1.75},
		{"weighted", WeightedMean([]float64{1, 2, 3}, []float64{1, 1, 2}), 2.25},
		{"sum empty", Sum(nil), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.got, 1e-9)
		})
	}
	assert.Equal(t, []float64{4, 1, 3, 2}, xs, "inputs must not be reordered")

	for name, v := range map[string]float64{
		"mean":            Mean(nil),
		"min":             Min(nil),
		"max":             Max(nil),
		"sample variance": SampleVariance([]float64{1}),
		"percentile high": Percentile(xs, 101),
		"weighted zero":   WeightedMean(xs, []float64{0, 0}),
	} {
		assert.True(t, math.IsNaN(v), name)
	}
}

func testPlate(t *testing.T, name string) *domain.Plate {
	t.Helper()
	p, err := domain.NewPlateWithWells(name, 8, 12, "",
		domain.MustParseWell("A1", 1, 2, 3),
		domain.MustParseWell("B2", 10, 20),
		domain.MustParseWell("C3"))
	require.NoError(t, err)
	return p
}

func TestStatisticLevels(t *testing.T) {
	mean, err := Lookup("mean")
	require.NoError(t, err)
	p := testPlate(t, "p1")

	assert.Equal(t, 2.0, mean.Well(domain.MustParseWell("A1", 1, 2, 3)))

	values := mean.Plate(p)
	require.Len(t, values, 3)
	assert.Equal(t, Value{Key: "A1", Value: 2}, values[0])
	assert.Equal(t, Value{Key: "B2", Value: 15}, values[1])
	assert.True(t, math.IsNaN(values[2].Value), "empty wells yield NaN")

	fromSet := mean.Set(p.WellSet())
	require.Len(t, fromSet, 3)
	assert.Equal(t, values[:2], fromSet[:2])

	st, err := domain.NewStack("s", p, testPlate(t, "p2"))
	require.NoError(t, err)
	per := mean.Stack(st)
	require.Len(t, per, 2)
	assert.Equal(t, "p1", per[0].Plate)
	assert.Equal(t, "p2", per[1].Plate)

	merged, err := mean.MergePlate(p)
	require.NoError(t, err)
	assert.InDelta(t, 36.0/5.0, merged, 1e-9)

	merged, err = mean.MergeStack(st)
	require.NoError(t, err)
	assert.InDelta(t, 36.0/5.0, merged, 1e-9)

	merged, err = mean.MergeSet(p.WellSet())
	require.NoError(t, err)
	assert.InDelta(t, 36.0/5.0, merged, 1e-9)

	_, err = mean.MergeSet(domain.NewWellSet("empty", domain.MustParseWell("A1")))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestWindowAndParameterized(t *testing.T) {
	sum, err := Lookup("sum")
	require.NoError(t, err)
	w, err := sum.Window(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, w.Well(domain.MustParseWell("A1", 1, 2, 3)))
	assert.Equal(t, 6.0, sum.Well(domain.MustParseWell("A1", 1, 2, 3)), "window returns a copy")

	_, err = sum.Window(2, 1)
	var rangeErr *validation.RangeError
	assert.ErrorAs(t, err, &rangeErr)

	p90 := PercentileOf(90)
	assert.Equal(t, "percentile_90", p90.Name())
	assert.InDelta(t, 9.0, p90.Well(domain.MustParseWell("A1", 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)), 1e-9)
	assert.InDelta(t, 2.5, p90.Well(domain.MustParseWell("A1", 2.5)), 1e-9)

	weights := []float64{0, 1}
	wm := WeightedOf(weights)
	weights[1] = 100
	assert.Equal(t, 2.0, wm.Well(domain.MustParseWell("A1", 1, 2)))

	custom := Of("range", func(xs []float64) float64 { return Max(xs) - Min(xs) })
	assert.Equal(t, 9.0, custom.Well(domain.MustParseWell("A1", 1, 10, 5)))

	_, err = Lookup("mode")
	assert.ErrorIs(t, err, ErrUnknownStatistic)
	assert.Contains(t, Names(), "median")
	assert.IsNonDecreasing(t, Names())
}

func TestDispatch(t *testing.T) {
	maxStat, err := Lookup("max")
	require.NoError(t, err)
	p := testPlate(t, "p")
	st, err := domain.NewStack("s", p)
	require.NoError(t, err)

	got, err := Dispatch(maxStat, domain.MustParseWell("A1", 1, 7, 3))
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)

	got, err = Dispatch(maxStat, domain.MustParseWell("A1", 1, 7, 3), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	got, err = Dispatch(maxStat, p)
	require.NoError(t, err)
	assert.IsType(t, []Value{}, got)

	got, err = Dispatch(maxStat, p.WellSet(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.([]Value)[1].Value)

	got, err = Dispatch(maxStat, st)
	require.NoError(t, err)
	assert.IsType(t, []PlateValues{}, got)

	merged, err := DispatchMerged(maxStat, st, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, merged)

	merged, err = DispatchMerged(maxStat, domain.MustParseWell("A1", 4))
	require.NoError(t, err)
	assert.Equal(t, 4.0, merged)

	var shapeErr *validation.ArgumentShapeError
	_, err = Dispatch(maxStat)
	assert.ErrorAs(t, err, &shapeErr)
	_, err = Dispatch(maxStat, p, p)
	assert.ErrorAs(t, err, &shapeErr)
	_, err = Dispatch(maxStat, []float64{1, 2})
	assert.ErrorAs(t, err, &shapeErr)
	_, err = DispatchMerged(maxStat, "A1")
	assert.ErrorAs(t, err, &shapeErr)

	var rangeErr *validation.RangeError
	_, err = Dispatch(maxStat, p, 3, 1)
	assert.ErrorAs(t, err, &rangeErr)
}
