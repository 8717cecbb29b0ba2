// Package dataset loads the medication usage table from a delimited file.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// DateColumn is the required header name of the date column.
const DateColumn = "Date"

// WeekdayNames lists weekday names in canonical week order.
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// dateLayouts are tried in order when no explicit format is configured.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Options controls dataset parsing.
type Options struct {
	Delimiter  rune   // field delimiter, ',' when zero
	DateFormat string // explicit Go time layout; empty tries a candidate list
}

// Table holds the loaded dataset in column-major form. It is built once at
// startup and never mutated afterwards.
type Table struct {
	Path        string
	Medications []string

	Dates    []time.Time
	DateOK   []bool
	Days     []int
	Months   []int
	Years    []int
	Weekdays []int // index into WeekdayNames, -1 when the date is null

	Values map[string][]float64 // per medication column, NaN means null

	MinYear int
	MaxYear int
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Dates)
}

// WeekdayName returns the weekday name for a row, or "" for a null date.
func (t *Table) WeekdayName(row int) string {
	idx := t.Weekdays[row]
	if idx < 0 || idx >= len(WeekdayNames) {
		return ""
	}
	return WeekdayNames[idx]
}

// Load reads and parses the dataset file. Rows with unparseable dates are
// kept but marked null; the load fails only when the file is unreadable, the
// header is unusable, or no date in the whole file parses.
func Load(path string, opts Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	dateIdx := -1
	medications := make([]string, 0, len(header))
	columnIdx := map[string]int{}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, DateColumn) {
			if dateIdx >= 0 {
				return nil, fmt.Errorf("duplicate %s column", DateColumn)
			}
			dateIdx = i
			continue
		}
		if _, ok := columnIdx[name]; ok {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		columnIdx[name] = i
		medications = append(medications, name)
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("dataset has no %s column", DateColumn)
	}
	if len(medications) == 0 {
		return nil, fmt.Errorf("dataset has no medication columns")
	}

	table := &Table{
		Path:        path,
		Medications: medications,
		Values:      make(map[string][]float64, len(medications)),
	}
	for _, med := range medications {
		table.Values[med] = nil
	}

	validDates := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
		date, ok := parseDate(record[dateIdx], opts.DateFormat)
		table.Dates = append(table.Dates, date)
		table.DateOK = append(table.DateOK, ok)
		if ok {
			validDates++
			table.Days = append(table.Days, date.Day())
			table.Months = append(table.Months, int(date.Month()))
			table.Years = append(table.Years, date.Year())
			table.Weekdays = append(table.Weekdays, weekdayIndex(date.Weekday()))
			if validDates == 1 || date.Year() < table.MinYear {
				table.MinYear = date.Year()
			}
			if validDates == 1 || date.Year() > table.MaxYear {
				table.MaxYear = date.Year()
			}
		} else {
			table.Days = append(table.Days, 0)
			table.Months = append(table.Months, 0)
			table.Years = append(table.Years, 0)
			table.Weekdays = append(table.Weekdays, -1)
		}
		for _, med := range medications {
			table.Values[med] = append(table.Values[med], parseValue(record[columnIdx[med]]))
		}
	}

	if validDates == 0 {
		return nil, fmt.Errorf("no parseable dates in %s", path)
	}
	return table, nil
}

func parseDate(value, layout string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	layouts := dateLayouts
	if layout != "" {
		layouts = []string{layout}
	}
	for _, l := range layouts {
		if parsed, err := time.ParseInLocation(l, value, time.UTC); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func parseValue(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return math.NaN()
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return parsed
}

// weekdayIndex maps time.Weekday (Sunday-first) to canonical Monday-first order.
func weekdayIndex(w time.Weekday) int {
	if w == time.Sunday {
		return 6
	}
	return int(w) - 1
}
