package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/avolkau/meddash/internal/dataset"
)

// WeekdayMeans holds per-weekday mean usage for the selected medications.
// Means are index-aligned with the medication list passed to AggregateWeekdays.
type WeekdayMeans struct {
	Weekday string
	Means   []float64
}

// AggregateWeekdays groups the subset by weekday name and computes the
// arithmetic mean of each selected column per group, ignoring null cells.
// Output follows canonical Monday..Sunday order; weekdays without rows are
// omitted rather than zero-filled.
func AggregateWeekdays(s Subset, medications []string) []WeekdayMeans {
	if s.Empty() || len(medications) == 0 {
		return nil
	}
	groups := make([][]int, len(dataset.WeekdayNames))
	for _, row := range s.Rows {
		idx := s.Table.Weekdays[row]
		if idx < 0 {
			continue
		}
		groups[idx] = append(groups[idx], row)
	}
	var out []WeekdayMeans
	for idx, rows := range groups {
		if len(rows) == 0 {
			continue
		}
		means := make([]float64, len(medications))
		for mi, med := range medications {
			values := make([]float64, 0, len(rows))
			for _, row := range rows {
				values = append(values, s.Table.Values[med][row])
			}
			means[mi] = stat.Mean(dropNaN(values), nil)
		}
		out = append(out, WeekdayMeans{Weekday: dataset.WeekdayNames[idx], Means: means})
	}
	return out
}
