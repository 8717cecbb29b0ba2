package analysis

import (
	"math"
	"testing"
)

func TestCorrelatePerfectlyLinear(t *testing.T) {
	table := newTestTable(t, []string{"A", "B"},
		[]string{"2023-01-01", "2023-01-02", "2023-01-03", "2023-01-04"},
		map[string][]float64{
			"A": {1, 2, 3, 4},
			"B": {3, 5, 7, 9},
		})

	matrix := Correlate(allRows(table), []string{"A", "B"})
	if !almostEqual(matrix.Values[0][0], 1) || !almostEqual(matrix.Values[1][1], 1) {
		t.Fatalf("expected diagonal 1.0, got %v %v", matrix.Values[0][0], matrix.Values[1][1])
	}
	if !almostEqual(matrix.Values[0][1], 1) {
		t.Fatalf("expected correlation 1.0 for a linear pair, got %v", matrix.Values[0][1])
	}
	if matrix.Values[0][1] != matrix.Values[1][0] {
		t.Fatalf("expected symmetric matrix")
	}
}

func TestCorrelateAntiCorrelated(t *testing.T) {
	table := newTestTable(t, []string{"A", "B"},
		[]string{"2023-01-01", "2023-01-02", "2023-01-03"},
		map[string][]float64{
			"A": {1, 2, 3},
			"B": {6, 4, 2},
		})

	matrix := Correlate(allRows(table), []string{"A", "B"})
	if !almostEqual(matrix.Values[0][1], -1) {
		t.Fatalf("expected correlation -1.0, got %v", matrix.Values[0][1])
	}
}

func TestCorrelateZeroVarianceStaysNull(t *testing.T) {
	table := newTestTable(t, []string{"A", "B"},
		[]string{"2023-01-01", "2023-01-02", "2023-01-03"},
		map[string][]float64{
			"A": {5, 5, 5},
			"B": {1, 2, 3},
		})

	matrix := Correlate(allRows(table), []string{"A", "B"})
	if !math.IsNaN(matrix.Values[0][1]) {
		t.Fatalf("expected NaN for a zero-variance pair, got %v", matrix.Values[0][1])
	}
	if !math.IsNaN(matrix.Values[1][0]) {
		t.Fatalf("expected symmetric NaN, got %v", matrix.Values[1][0])
	}
}

func TestCorrelatePairwiseNullDeletion(t *testing.T) {
	table := newTestTable(t, []string{"A", "B"},
		[]string{"2023-01-01", "2023-01-02", "2023-01-03", "2023-01-04"},
		map[string][]float64{
			"A": {1, math.NaN(), 3, 4},
			"B": {2, 100, 6, 8},
		})

	// The NaN row drops out of the pair, leaving a perfectly linear relation.
	matrix := Correlate(allRows(table), []string{"A", "B"})
	if !almostEqual(matrix.Values[0][1], 1) {
		t.Fatalf("expected correlation 1.0 after pairwise deletion, got %v", matrix.Values[0][1])
	}
}

func TestCorrelateTooFewSharedObservations(t *testing.T) {
	table := newTestTable(t, []string{"A", "B"},
		[]string{"2023-01-01", "2023-01-02"},
		map[string][]float64{
			"A": {1, math.NaN()},
			"B": {2, 3},
		})

	matrix := Correlate(allRows(table), []string{"A", "B"})
	if !math.IsNaN(matrix.Values[0][1]) {
		t.Fatalf("expected NaN with fewer than two shared observations, got %v", matrix.Values[0][1])
	}
}

func TestCorrelateSingleColumn(t *testing.T) {
	table := newTestTable(t, []string{"A"},
		[]string{"2023-01-01"},
		map[string][]float64{"A": {1}})

	matrix := Correlate(allRows(table), []string{"A"})
	if len(matrix.Values) != 1 || len(matrix.Values[0]) != 1 {
		t.Fatalf("expected 1x1 matrix, got %v", matrix.Values)
	}
	if matrix.Values[0][0] != 1.0 {
		t.Fatalf("expected trivial correlation 1.0, got %v", matrix.Values[0][0])
	}
}
