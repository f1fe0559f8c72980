package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NumSummary holds the descriptive statistics of one metric.
type NumSummary struct {
	Count     int
	Mean, Std float64
	Min, Max  float64
}

// present drops NaN entries.
func present(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// mean is the arithmetic mean of the non-missing values, NaN when there are none.
func mean(xs []float64) float64 {
	p := present(xs)
	if len(p) == 0 {
		return math.NaN()
	}
	return stat.Mean(p, nil)
}

// summarize computes mean, sample standard deviation (N-1), min and max over
// the non-missing values. Undefined statistics are NaN.
func summarize(xs []float64) NumSummary {
	p := present(xs)
	s := NumSummary{Count: len(p), Mean: math.NaN(), Std: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	if len(p) == 0 {
		return s
	}
	s.Mean = stat.Mean(p, nil)
	s.Min = floats.Min(p)
	s.Max = floats.Max(p)
	if len(p) > 1 {
		s.Std = stat.StdDev(p, nil)
	}
	return s
}

// pearson is the correlation over pairs where both values are present.
func pearson(xs, ys []float64) float64 {
	var a, b []float64
	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		a = append(a, xs[i])
		b = append(b, ys[i])
	}
	if len(a) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(a, b, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return math.Max(-1, math.Min(1, r))
}
