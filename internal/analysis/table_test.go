package analysis

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Medication", "Mean", "Count"}
	rows := [][]string{
		{"Paracetamol", "12.50", "31"},
		{"Ibuprofen", "8.00", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Medication    Mean  Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Paracetamol  12.50     31" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Ibuprofen     8.00      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty input, got %v", lines)
	}
}

func TestPadCell(t *testing.T) {
	if got := padCell("ab", 5, false); got != "ab   " {
		t.Fatalf("unexpected left pad: %q", got)
	}
	if got := padCell("ab", 5, true); got != "   ab" {
		t.Fatalf("unexpected right align: %q", got)
	}
	if got := padCell("abcdef", 3, false); got != "abcdef" {
		t.Fatalf("oversized cell must stay intact: %q", got)
	}
}
