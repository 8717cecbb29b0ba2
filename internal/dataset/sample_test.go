package dataset

import (
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"
)

func TestGenerateDeterministicWithSeed(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	medications := []string{"DrugA", "DrugB"}

	first := NewGenerator(7).Generate(medications, start, 14)
	second := NewGenerator(7).Generate(medications, start, 14)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for the same seed")
	}
	if len(first) != 14 {
		t.Fatalf("expected 14 rows, got %d", len(first))
	}
	for i, row := range first {
		if len(row) != len(medications)+1 {
			t.Fatalf("row %d has %d fields", i, len(row))
		}
		if _, err := time.Parse("2006-01-02", row[0]); err != nil {
			t.Fatalf("row %d has bad date %q: %v", i, row[0], err)
		}
		for _, cell := range row[1:] {
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				t.Fatalf("row %d has bad value %q: %v", i, cell, err)
			}
			if value < 0 {
				t.Fatalf("row %d has negative usage %v", i, value)
			}
		}
	}
	if first[0][0] != "2023-01-01" {
		t.Fatalf("expected first row at the start date, got %q", first[0][0])
	}
}

func TestWriteCSVRoundtrip(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	medications := []string{"Paracetamol", "Ibuprofen"}
	rows := NewGenerator(42).Generate(medications, start, 30)

	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := WriteCSV(path, medications, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	table, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Len() != 30 {
		t.Fatalf("expected 30 rows, got %d", table.Len())
	}
	if !reflect.DeepEqual(table.Medications, medications) {
		t.Fatalf("unexpected medications %v", table.Medications)
	}
	for _, ok := range table.DateOK {
		if !ok {
			t.Fatalf("generated dates must all parse")
		}
	}
}
