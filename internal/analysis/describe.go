package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds the descriptive statistics of one medication column
// over the filtered subset. Std is NaN when fewer than two non-null values
// exist; it is reported as null, never as zero.
type ColumnSummary struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
	Sum    float64
}

// Describe computes per-column summaries for the selected medications.
// Null cells are excluded from every statistic, including the count.
func Describe(s Subset, medications []string) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(medications))
	for _, med := range medications {
		values := dropNaN(s.Column(med))
		summary := ColumnSummary{
			Name:   med,
			Count:  len(values),
			Mean:   math.NaN(),
			Std:    math.NaN(),
			Min:    math.NaN(),
			P25:    math.NaN(),
			Median: math.NaN(),
			P75:    math.NaN(),
			Max:    math.NaN(),
			Sum:    0,
		}
		if len(values) > 0 {
			sorted := append([]float64(nil), values...)
			sort.Float64s(sorted)
			summary.Mean = stat.Mean(values, nil)
			summary.Min = sorted[0]
			summary.Max = sorted[len(sorted)-1]
			summary.P25 = percentile(sorted, 0.25)
			summary.Median = percentile(sorted, 0.5)
			summary.P75 = percentile(sorted, 0.75)
			summary.Sum = floats.Sum(values)
		}
		if len(values) > 1 {
			summary.Std = stat.StdDev(values, nil)
		}
		out = append(out, summary)
	}
	return out
}

// percentile computes the q-quantile of sorted values with linear
// interpolation between closest ranks. gonum's stat.Quantile offers Empirical
// and LinInterp cumulant kinds, neither of which matches this definition, so
// the interpolation is done directly.
func percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
