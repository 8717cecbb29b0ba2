package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/avolkau/meddash/internal/dataset"
)

// Subset is a transient row-index view over an immutable table. It never
// copies or mutates the underlying data.
type Subset struct {
	Table *dataset.Table
	Rows  []int
}

// Apply produces the subset of rows matching all four predicates: year in
// range, month in the selected set, day in range. Rows with a null date never
// match. An empty result is a valid state, not an error.
func Apply(t *dataset.Table, p FilterParams) Subset {
	months := make(map[int]struct{}, len(p.Months))
	for _, m := range p.Months {
		months[m] = struct{}{}
	}
	var rows []int
	for i := 0; i < t.Len(); i++ {
		if !t.DateOK[i] {
			continue
		}
		if t.Years[i] < p.YearMin || t.Years[i] > p.YearMax {
			continue
		}
		if _, ok := months[t.Months[i]]; !ok {
			continue
		}
		if t.Days[i] < p.DayMin || t.Days[i] > p.DayMax {
			continue
		}
		rows = append(rows, i)
	}
	return Subset{Table: t, Rows: rows}
}

// Len returns the number of rows in the subset.
func (s Subset) Len() int {
	return len(s.Rows)
}

// Empty reports whether the subset has no rows.
func (s Subset) Empty() bool {
	return len(s.Rows) == 0
}

// Column returns the values of one medication column across the subset, in
// subset row order. Null cells stay NaN.
func (s Subset) Column(medication string) []float64 {
	source, ok := s.Table.Values[medication]
	if !ok {
		return nil
	}
	out := make([]float64, len(s.Rows))
	for i, row := range s.Rows {
		out[i] = source[row]
	}
	return out
}

// DateRange returns the earliest and latest dates in the subset.
func (s Subset) DateRange() (time.Time, time.Time, bool) {
	if s.Empty() {
		return time.Time{}, time.Time{}, false
	}
	minDate := s.Table.Dates[s.Rows[0]]
	maxDate := minDate
	for _, row := range s.Rows[1:] {
		d := s.Table.Dates[row]
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	return minDate, maxDate, true
}

// SortedByDate returns the subset's row indices ordered by date ascending.
func (s Subset) SortedByDate() []int {
	rows := append([]int(nil), s.Rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		return s.Table.Dates[rows[i]].Before(s.Table.Dates[rows[j]])
	})
	return rows
}

// dropNaN returns the non-null values of xs.
func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
