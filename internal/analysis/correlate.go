package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix is a symmetric pairwise Pearson correlation matrix over
// the selected medication columns.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// Correlate computes the pairwise Pearson correlation across the selected
// columns using only rows where both columns are non-null. Undefined cells
// (zero variance, fewer than two shared observations) stay NaN and are never
// coerced to 0. A single selected column yields a trivial 1x1 matrix of 1.0.
func Correlate(s Subset, medications []string) CorrelationMatrix {
	n := len(medications)
	matrix := CorrelationMatrix{
		Columns: append([]string(nil), medications...),
		Values:  make([][]float64, n),
	}
	for i := range matrix.Values {
		matrix.Values[i] = make([]float64, n)
	}
	if n == 1 {
		matrix.Values[0][0] = 1.0
		return matrix
	}
	columns := make([][]float64, n)
	for i, med := range medications {
		columns[i] = s.Column(med)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pairwiseCorrelation(columns[i], columns[j])
			matrix.Values[i][j] = r
			matrix.Values[j][i] = r
		}
	}
	return matrix
}

func pairwiseCorrelation(xs, ys []float64) float64 {
	x := make([]float64, 0, len(xs))
	y := make([]float64, 0, len(ys))
	for k := range xs {
		if math.IsNaN(xs[k]) || math.IsNaN(ys[k]) {
			continue
		}
		x = append(x, xs[k])
		y = append(y, ys[k])
	}
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
