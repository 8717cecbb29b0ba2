package analysis

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDescribe(t *testing.T) {
	table := newTestTable(t, []string{"DrugA"},
		[]string{
			"2023-01-01", "2023-01-02", "2023-01-03", "2023-01-04", "2023-01-05",
			"2023-01-06", "2023-01-07", "2023-01-08", "2023-01-09", "2023-01-10",
		},
		map[string][]float64{"DrugA": {1, 2, 3, 4, 5, 6, 7, 8, 9, 10}})

	summaries := Describe(allRows(table), []string{"DrugA"})
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	s := summaries[0]
	if s.Count != 10 {
		t.Fatalf("expected count 10, got %d", s.Count)
	}
	if !almostEqual(s.Mean, 5.5) {
		t.Fatalf("expected mean 5.5, got %v", s.Mean)
	}
	if !almostEqual(s.Min, 1) || !almostEqual(s.Max, 10) {
		t.Fatalf("expected min 1 max 10, got %v %v", s.Min, s.Max)
	}
	if !almostEqual(s.P25, 3.25) {
		t.Fatalf("expected 25th percentile 3.25, got %v", s.P25)
	}
	if !almostEqual(s.Median, 5.5) {
		t.Fatalf("expected median 5.5, got %v", s.Median)
	}
	if !almostEqual(s.P75, 7.75) {
		t.Fatalf("expected 75th percentile 7.75, got %v", s.P75)
	}
	if !almostEqual(s.Sum, 55) {
		t.Fatalf("expected sum 55, got %v", s.Sum)
	}
	// Sample standard deviation of 1..10.
	if math.Abs(s.Std-3.0276503540974917) > 1e-9 {
		t.Fatalf("unexpected std %v", s.Std)
	}
}

func TestDescribeStdNullBelowTwoValues(t *testing.T) {
	table := newTestTable(t, []string{"DrugA"},
		[]string{"2023-01-01"},
		map[string][]float64{"DrugA": {42}})

	s := Describe(allRows(table), []string{"DrugA"})[0]
	if s.Count != 1 {
		t.Fatalf("expected count 1, got %d", s.Count)
	}
	if !math.IsNaN(s.Std) {
		t.Fatalf("expected null std for a single value, got %v", s.Std)
	}
	if !almostEqual(s.Mean, 42) || !almostEqual(s.Median, 42) {
		t.Fatalf("expected mean and median 42, got %v %v", s.Mean, s.Median)
	}
}

func TestDescribeExcludesNulls(t *testing.T) {
	table := newTestTable(t, []string{"DrugA"},
		[]string{"2023-01-01", "2023-01-02", "2023-01-03", "2023-01-04"},
		map[string][]float64{"DrugA": {2, math.NaN(), 4, math.NaN()}})

	s := Describe(allRows(table), []string{"DrugA"})[0]
	if s.Count != 2 {
		t.Fatalf("expected null cells excluded from count, got %d", s.Count)
	}
	if !almostEqual(s.Mean, 3) {
		t.Fatalf("expected mean 3, got %v", s.Mean)
	}
	if !almostEqual(s.Sum, 6) {
		t.Fatalf("expected sum 6, got %v", s.Sum)
	}
}

func TestDescribeEmptyColumn(t *testing.T) {
	table := newTestTable(t, []string{"DrugA"},
		[]string{"2023-01-01"},
		map[string][]float64{"DrugA": {math.NaN()}})

	s := Describe(allRows(table), []string{"DrugA"})[0]
	if s.Count != 0 {
		t.Fatalf("expected count 0, got %d", s.Count)
	}
	if s.Sum != 0 {
		t.Fatalf("expected sum 0 for empty column, got %v", s.Sum)
	}
	if !math.IsNaN(s.Mean) || !math.IsNaN(s.Min) || !math.IsNaN(s.Max) || !math.IsNaN(s.Median) {
		t.Fatalf("expected null statistics for empty column: %+v", s)
	}
}

func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	if got := percentile(sorted, 0.5); !almostEqual(got, 25) {
		t.Fatalf("expected interpolated median 25, got %v", got)
	}
	if got := percentile(sorted, 0); !almostEqual(got, 10) {
		t.Fatalf("expected 0th percentile 10, got %v", got)
	}
	if got := percentile(sorted, 1); !almostEqual(got, 40) {
		t.Fatalf("expected 100th percentile 40, got %v", got)
	}
	if got := percentile([]float64{7}, 0.75); !almostEqual(got, 7) {
		t.Fatalf("expected single-value percentile 7, got %v", got)
	}
	if got := percentile(nil, 0.5); !math.IsNaN(got) {
		t.Fatalf("expected NaN for empty input, got %v", got)
	}
}
