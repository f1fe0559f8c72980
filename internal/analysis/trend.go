package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Trend classifies the direction of a metric across academic years.
type Trend string

const (
	TrendIncreasing Trend = "creciente"
	TrendDecreasing Trend = "decreciente"
	TrendStable     Trend = "estable"
)

// TrendThreshold is the absolute slope beyond which a series is considered to
// move. It is not scaled to the metric.
const TrendThreshold = 0.01

// Classify maps a regression slope to a Trend. NaN is stable.
func Classify(slope float64) Trend {
	switch {
	case slope > TrendThreshold:
		return TrendIncreasing
	case slope < -TrendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// Slope fits ys against their positions 0..n-1 by least squares and returns
// the slope. Fewer than two points give 0.
func Slope(ys []float64) float64 {
	if len(ys) < 2 {
		return 0
	}
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta
}

// yearlyMeans groups values by year label, sorted ascending as strings, and
// returns the per-year means in that order. A year with no value for the
// metric yields NaN.
func yearlyMeans(years []string, values []float64) []float64 {
	byYear := map[string][]float64{}
	for i, y := range years {
		if y == "" {
			continue
		}
		byYear[y] = append(byYear[y], values[i])
	}
	labels := make([]string, 0, len(byYear))
	for y := range byYear {
		labels = append(labels, y)
	}
	sort.Strings(labels)
	out := make([]float64, len(labels))
	for i, y := range labels {
		out[i] = mean(byYear[y])
	}
	return out
}

// trendOf classifies the per-year means of values.
func trendOf(years []string, values []float64) Trend {
	s := Slope(yearlyMeans(years, values))
	if math.IsNaN(s) {
		return TrendStable
	}
	return Classify(s)
}
