package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

const noDataMessage = "No data available for the selected filters."

// RenderSummary prints the filtered subset header: date range and row count.
func RenderSummary(w io.Writer, s Subset) error {
	if s.Empty() {
		_, err := fmt.Fprintln(w, noDataMessage)
		return err
	}
	minDate, maxDate, _ := s.DateRange()
	if _, err := fmt.Fprintf(w, "Date Range: %s to %s\n", minDate.Format("2006-01-02"), maxDate.Format("2006-01-02")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total Records: %d\n", s.Len())
	return err
}

// RenderWeekdayTable prints per-weekday mean usage for the selected columns.
func RenderWeekdayTable(w io.Writer, medications []string, groups []WeekdayMeans) error {
	if len(groups) == 0 {
		_, err := fmt.Fprintln(w, noDataMessage)
		return err
	}
	headers := append([]string{"Weekday"}, medications...)
	rows := make([][]string, 0, len(groups))
	rightAlign := map[int]bool{}
	for i := range medications {
		rightAlign[i+1] = true
	}
	for _, group := range groups {
		row := make([]string, 0, len(group.Means)+1)
		row = append(row, group.Weekday)
		for _, mean := range group.Means {
			row = append(row, formatCell(mean))
		}
		rows = append(rows, row)
	}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}

// RenderStatsTable prints the descriptive statistics, one row per medication.
func RenderStatsTable(w io.Writer, summaries []ColumnSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, noDataMessage)
		return err
	}
	headers := []string{"Medication", "Count", "Mean", "Std Dev", "Min", "25%", "Median", "75%", "Max", "Total"}
	rightAlign := map[int]bool{}
	for i := 1; i < len(headers); i++ {
		rightAlign[i] = true
	}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Count),
			formatCell(s.Mean),
			formatCell(s.Std),
			formatCell(s.Min),
			formatCell(s.P25),
			formatCell(s.Median),
			formatCell(s.P75),
			formatCell(s.Max),
			formatCell(s.Sum),
		})
	}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}

// RenderCorrelation prints the pairwise correlation matrix.
func RenderCorrelation(w io.Writer, matrix CorrelationMatrix) error {
	if len(matrix.Columns) == 0 {
		_, err := fmt.Fprintln(w, noDataMessage)
		return err
	}
	headers := append([]string{""}, matrix.Columns...)
	rightAlign := map[int]bool{}
	for i := range matrix.Columns {
		rightAlign[i+1] = true
	}
	rows := make([][]string, 0, len(matrix.Columns))
	for i, name := range matrix.Columns {
		row := make([]string, 0, len(matrix.Columns)+1)
		row = append(row, name)
		for _, v := range matrix.Values[i] {
			row = append(row, formatCell(v))
		}
		rows = append(rows, row)
	}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatCell renders a statistic to two decimal places; nulls become "-".
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
