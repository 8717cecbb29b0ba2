package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Generator produces synthetic medication usage datasets.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator for the given seed. Seed 0 uses the clock.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate builds one usage row per day starting at start. Each medication
// follows an independent non-negative random walk with a mild weekend dip,
// so the weekday aggregation has visible structure.
func (g *Generator) Generate(medications []string, start time.Time, days int) [][]string {
	levels := make([]float64, len(medications))
	for i := range levels {
		levels[i] = 20 + g.rnd.Float64()*60
	}
	rows := make([][]string, 0, days)
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d)
		row := make([]string, 0, len(medications)+1)
		row = append(row, date.Format("2006-01-02"))
		for i := range medications {
			levels[i] += g.rnd.Float64()*8 - 4
			if levels[i] < 0 {
				levels[i] = 0
			}
			value := levels[i]
			switch date.Weekday() {
			case time.Saturday, time.Sunday:
				value *= 0.7
			}
			row = append(row, strconv.FormatFloat(value, 'f', 1, 64))
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes a generated dataset atomically via a temp file rename.
func WriteCSV(path string, medications []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "dataset-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp dataset: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	buffered := bufio.NewWriter(tmpFile)
	writer := csv.NewWriter(buffered)
	header := append([]string{DateColumn}, medications...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush dataset: %w", err)
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("failed to flush dataset: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close dataset: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}
