package stats

import (
	"errors"
	"fmt"
	"sort"

	"microplate/pkg/domain"
	"microplate/pkg/validation"
)

// ErrUnknownStatistic is returned by Lookup.
var ErrUnknownStatistic = errors.New("unknown statistic")

// Statistic reduces a sequence to a single value. It may be restricted to a
// [begin,end) window of every sequence it sees.
type Statistic struct {
	name   string
	fn     func(xs []float64) float64
	window *[2]int
}

// Value is the statistic of one well, keyed by coordinate.
type Value struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// PlateValues groups per-well values by plate.
type PlateValues struct {
	Plate  string  `json:"plate"`
	Values []Value `json:"values"`
}

// Of wraps fn as a named statistic.
func Of(name string, fn func(xs []float64) float64) Statistic {
	return Statistic{name: name, fn: fn}
}

// PercentileOf builds the p-th percentile statistic.
func PercentileOf(p float64) Statistic {
	return Of(fmt.Sprintf("percentile_%g", p), func(xs []float64) float64 { return Percentile(xs, p) })
}

// WeightedOf builds a weighted mean statistic over the given weights.
func WeightedOf(weights []float64) Statistic {
	ws := append([]float64(nil), weights...)
	return Of("weighted_mean", func(xs []float64) float64 { return WeightedMean(xs, ws) })
}

var builtins = map[string]func([]float64) float64{
	"sum":                 Sum,
	"mean":                Mean,
	"min":                 Min,
	"max":                 Max,
	"median":              Median,
	"population_variance": PopulationVariance,
	"sample_variance":     SampleVariance,
	"std_dev":             StdDev,
	"sample_std_dev":      SampleStdDev,
}

// Lookup returns the named built-in statistic.
func Lookup(name string) (Statistic, error) {
	fn, ok := builtins[name]
	if !ok {
		return Statistic{}, fmt.Errorf("%w: %q", ErrUnknownStatistic, name)
	}
	return Of(name, fn), nil
}

// Names lists the built-in statistics in ascending order.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Name returns the statistic name.
func (s Statistic) Name() string { return s.name }

// Window returns a copy restricted to [begin,end) of every sequence.
func (s Statistic) Window(begin, end int) (Statistic, error) {
	if err := validation.ValidateRange(begin, end); err != nil {
		return Statistic{}, fmt.Errorf("%s: %w", s.name, err)
	}
	s.window = &[2]int{begin, end}
	return s, nil
}

func (s Statistic) slice(xs []float64) []float64 {
	if s.window == nil {
		return xs
	}
	end := min(s.window[1], len(xs))
	if s.window[0] >= end {
		return nil
	}
	return xs[s.window[0]:end]
}

// Well computes the statistic of one well. Windows that select nothing
// yield whatever the statistic returns for an empty sequence.
func (s Statistic) Well(w *domain.Well) float64 {
	return s.fn(s.slice(w.Data()))
}

// Set computes the statistic of every well of ws in coordinate order.
func (s Statistic) Set(ws *domain.WellSet) []Value {
	return s.values(ws.Wells())
}

// Plate computes the statistic of every well of p in coordinate order.
func (s Statistic) Plate(p *domain.Plate) []Value {
	return s.values(p.Wells())
}

// Stack computes per-well statistics for every plate of st.
func (s Statistic) Stack(st *domain.Stack) []PlateValues {
	plates := st.Plates()
	out := make([]PlateValues, len(plates))
	for i, p := range plates {
		out[i] = PlateValues{Plate: p.Name(), Values: s.Plate(p)}
	}
	return out
}

func (s Statistic) values(wells []*domain.Well) []Value {
	out := make([]Value, len(wells))
	for i, w := range wells {
		out[i] = Value{Key: w.Key(), Value: s.Well(w)}
	}
	return out
}

// MergeSet computes the statistic over the values of every well of ws.
func (s Statistic) MergeSet(ws *domain.WellSet) (float64, error) {
	return s.merge(ws.Wells())
}

// MergePlate computes the statistic over the values of every well of p.
func (s Statistic) MergePlate(p *domain.Plate) (float64, error) {
	return s.merge(p.Wells())
}

// MergeStack computes the statistic over the values of every well of every
// plate of st.
func (s Statistic) MergeStack(st *domain.Stack) (float64, error) {
	var wells []*domain.Well
	for _, p := range st.Plates() {
		wells = append(wells, p.Wells()...)
	}
	return s.merge(wells)
}

func (s Statistic) merge(wells []*domain.Well) (float64, error) {
	var all []float64
	for _, w := range wells {
		all = append(all, s.slice(w.Data())...)
	}
	if len(all) == 0 {
		return 0, fmt.Errorf("%s: %w", s.name, ErrEmpty)
	}
	return s.fn(all), nil
}
