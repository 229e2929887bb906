// Package stats computes descriptive statistics over well data. Primitives
// operate on plain sequences; a Statistic applies one of them per well, per
// set, per plate or per stack, or merged across every value of a container.
package stats

import (
	"errors"
	"math"
	"slices"
)

// ErrEmpty is returned when a merged statistic has no values to work on.
var ErrEmpty = errors.New("stats: no values")

// Sum returns the sum of xs, or zero for an empty sequence.
func Sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// Mean returns the arithmetic mean, or NaN for an empty sequence.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return Sum(xs) / float64(len(xs))
}

// Min returns the smallest value, or NaN for an empty sequence.
func Min(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return slices.Min(xs)
}

// Max returns the largest value, or NaN for an empty sequence.
func Max(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return slices.Max(xs)
}

// Median returns the middle value, averaging the two middle values of an
// even-length sequence.
func Median(xs []float64) float64 {
	return Percentile(xs, 50)
}

// PopulationVariance divides the squared deviations by n.
func PopulationVariance(xs []float64) float64 {
	return variance(xs, 0)
}

// SampleVariance divides the squared deviations by n-1. It is NaN for fewer
// than two values.
func SampleVariance(xs []float64) float64 {
	return variance(xs, 1)
}

func variance(xs []float64, ddof int) float64 {
	n := len(xs) - ddof
	if n <= 0 || len(xs) == 0 {
		return math.NaN()
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return ss / float64(n)
}

// StdDev is the population standard deviation.
func StdDev(xs []float64) float64 {
	return math.Sqrt(PopulationVariance(xs))
}

// SampleStdDev is the sample standard deviation.
func SampleStdDev(xs []float64) float64 {
	return math.Sqrt(SampleVariance(xs))
}

// Percentile returns the p-th percentile (0 <= p <= 100) using linear
// interpolation between closest ranks. It is NaN for an empty sequence or a
// p outside [0,100].
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 || p < 0 || p > 100 || math.IsNaN(p) {
		return math.NaN()
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// WeightedMean returns sum(x*w)/sum(w) over the overlapping prefix of xs and
// ws. It is NaN when the overlap is empty or the weights sum to zero.
func WeightedMean(xs, ws []float64) float64 {
	n := min(len(xs), len(ws))
	var num, den float64
	for i := 0; i < n; i++ {
		num += xs[i] * ws[i]
		den += ws[i]
	}
	if n == 0 || den == 0 {
		return math.NaN()
	}
	return num / den
}
