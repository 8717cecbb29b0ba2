package analysis

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestRenderSummary(t *testing.T) {
	table := newTestTable(t, []string{"DrugA"},
		[]string{"2023-01-05", "2023-01-02"},
		map[string][]float64{"DrugA": {1, 2}})

	var buf bytes.Buffer
	if err := RenderSummary(&buf, allRows(table)); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Date Range: 2023-01-02 to 2023-01-05") {
		t.Fatalf("expected date range line, got %q", out)
	}
	if !strings.Contains(out, "Total Records: 2") {
		t.Fatalf("expected record count line, got %q", out)
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	table := newTestTable(t, []string{"DrugA"},
		[]string{"2023-01-01"},
		map[string][]float64{"DrugA": {1}})

	var buf bytes.Buffer
	if err := RenderSummary(&buf, Subset{Table: table}); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No data available") {
		t.Fatalf("expected no-data message, got %q", buf.String())
	}
}

func TestRenderStatsTable(t *testing.T) {
	summaries := []ColumnSummary{{
		Name:   "DrugA",
		Count:  1,
		Mean:   5,
		Std:    math.NaN(),
		Min:    5,
		P25:    5,
		Median: 5,
		P75:    5,
		Max:    5,
		Sum:    5,
	}}

	var buf bytes.Buffer
	if err := RenderStatsTable(&buf, summaries); err != nil {
		t.Fatalf("RenderStatsTable failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	for _, header := range []string{"Medication", "Count", "Mean", "Std Dev", "Median", "Total"} {
		if !strings.Contains(lines[0], header) {
			t.Fatalf("expected header %q in %q", header, lines[0])
		}
	}
	if !strings.Contains(lines[1], "5.00") {
		t.Fatalf("expected formatted value in %q", lines[1])
	}
	// Null std renders as a dash, never as zero.
	if !strings.Contains(lines[1], "-") {
		t.Fatalf("expected dash for null std in %q", lines[1])
	}
	if strings.Contains(lines[1], "0.00") {
		t.Fatalf("null std must not render as zero: %q", lines[1])
	}
}

func TestRenderWeekdayTable(t *testing.T) {
	groups := []WeekdayMeans{
		{Weekday: "Monday", Means: []float64{1.5}},
		{Weekday: "Sunday", Means: []float64{math.NaN()}},
	}

	var buf bytes.Buffer
	if err := RenderWeekdayTable(&buf, []string{"DrugA"}, groups); err != nil {
		t.Fatalf("RenderWeekdayTable failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Weekday") || !strings.Contains(out, "DrugA") {
		t.Fatalf("expected headers in %q", out)
	}
	if !strings.Contains(out, "Monday") || !strings.Contains(out, "1.50") {
		t.Fatalf("expected Monday mean in %q", out)
	}
}

func TestRenderCorrelation(t *testing.T) {
	matrix := CorrelationMatrix{
		Columns: []string{"A", "B"},
		Values: [][]float64{
			{1, math.NaN()},
			{math.NaN(), 1},
		},
	}

	var buf bytes.Buffer
	if err := RenderCorrelation(&buf, matrix); err != nil {
		t.Fatalf("RenderCorrelation failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1.00") {
		t.Fatalf("expected diagonal in %q", out)
	}
	if !strings.Contains(out, "-") {
		t.Fatalf("expected dash for undefined cell in %q", out)
	}
}

func TestRenderCorrelationEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCorrelation(&buf, CorrelationMatrix{}); err != nil {
		t.Fatalf("RenderCorrelation failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No data available") {
		t.Fatalf("expected no-data message, got %q", buf.String())
	}
}
