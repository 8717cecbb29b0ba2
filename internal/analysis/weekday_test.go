package analysis

import (
	"math"
	"testing"
)

func TestAggregateWeekdaysCanonicalOrder(t *testing.T) {
	// 2023-01-02 is a Monday, 2023-01-08 a Sunday, 2023-01-09 a Monday.
	table := newTestTable(t, []string{"DrugA"},
		[]string{"2023-01-08", "2023-01-03", "2023-01-02", "2023-01-09"},
		map[string][]float64{"DrugA": {30, 20, 10, 14}})

	groups := AggregateWeekdays(allRows(table), []string{"DrugA"})
	if len(groups) != 3 {
		t.Fatalf("expected 3 weekday groups, got %d", len(groups))
	}
	wantOrder := []string{"Monday", "Tuesday", "Sunday"}
	for i, want := range wantOrder {
		if groups[i].Weekday != want {
			t.Fatalf("expected %s at position %d, got %s", want, i, groups[i].Weekday)
		}
	}
	if !almostEqual(groups[0].Means[0], 12) {
		t.Fatalf("expected Monday mean 12, got %v", groups[0].Means[0])
	}
	if !almostEqual(groups[1].Means[0], 20) {
		t.Fatalf("expected Tuesday mean 20, got %v", groups[1].Means[0])
	}
	if !almostEqual(groups[2].Means[0], 30) {
		t.Fatalf("expected Sunday mean 30, got %v", groups[2].Means[0])
	}
}

func TestAggregateWeekdaysIgnoresNulls(t *testing.T) {
	// Two Mondays, one null.
	table := newTestTable(t, []string{"DrugA", "DrugB"},
		[]string{"2023-01-02", "2023-01-09"},
		map[string][]float64{
			"DrugA": {4, math.NaN()},
			"DrugB": {math.NaN(), math.NaN()},
		})

	groups := AggregateWeekdays(allRows(table), []string{"DrugA", "DrugB"})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if !almostEqual(groups[0].Means[0], 4) {
		t.Fatalf("expected mean 4 with null ignored, got %v", groups[0].Means[0])
	}
	if !math.IsNaN(groups[0].Means[1]) {
		t.Fatalf("expected null mean for an all-null group, got %v", groups[0].Means[1])
	}
}

func TestAggregateWeekdaysEmptySubset(t *testing.T) {
	table := newTestTable(t, []string{"DrugA"},
		[]string{"2023-01-02"},
		map[string][]float64{"DrugA": {1}})

	if groups := AggregateWeekdays(Subset{Table: table}, []string{"DrugA"}); groups != nil {
		t.Fatalf("expected nil for empty subset, got %v", groups)
	}
	if groups := AggregateWeekdays(allRows(table), nil); groups != nil {
		t.Fatalf("expected nil without medications, got %v", groups)
	}
}
