// Package analysis contains the filter engine, aggregations, and reporting.
package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/avolkau/meddash/internal/dataset"
)

// FilterParams holds one set of user-chosen filter inputs. Medications may be
// empty, which means no analysis can run; the views degrade to a warning.
type FilterParams struct {
	Medications []string
	YearMin     int
	YearMax     int
	Months      []int // sorted, unique, each in 1..12
	DayMin      int
	DayMax      int
}

// MaxDay returns the dynamic day-range cap for a month selection. Exactly one
// 30-day month caps at 30; exactly February caps at 28 (leap years are
// intentionally not accounted for); any other selection caps at 31.
func MaxDay(months []int) int {
	if len(months) != 1 {
		return 31
	}
	switch months[0] {
	case 4, 6, 9, 11:
		return 30
	case 2:
		return 28
	default:
		return 31
	}
}

// DefaultParams builds the startup filter set: the first discovered
// medication, the full observed year range, January only, and the full day
// range under the dynamic cap.
func DefaultParams(t *dataset.Table) FilterParams {
	params := FilterParams{
		YearMin: t.MinYear,
		YearMax: t.MaxYear,
		Months:  []int{1},
		DayMin:  1,
	}
	params.DayMax = MaxDay(params.Months)
	if len(t.Medications) > 0 {
		params.Medications = []string{t.Medications[0]}
	}
	return params
}

// Normalize clamps the parameters to the table's bounds and the dynamic day
// cap, mirroring slider semantics. It returns a normalized copy.
func (p FilterParams) Normalize(t *dataset.Table) FilterParams {
	out := p
	if out.YearMin > out.YearMax {
		out.YearMin, out.YearMax = out.YearMax, out.YearMin
	}
	if out.YearMin < t.MinYear {
		out.YearMin = t.MinYear
	}
	if out.YearMax > t.MaxYear {
		out.YearMax = t.MaxYear
	}
	out.Months = normalizeMonths(out.Months)
	dayCap := MaxDay(out.Months)
	if out.DayMin > out.DayMax {
		out.DayMin, out.DayMax = out.DayMax, out.DayMin
	}
	if out.DayMin < 1 {
		out.DayMin = 1
	}
	if out.DayMax > dayCap {
		out.DayMax = dayCap
	}
	if out.DayMin > dayCap {
		out.DayMin = dayCap
	}
	return out
}

func normalizeMonths(months []int) []int {
	seen := map[int]struct{}{}
	out := make([]int, 0, len(months))
	for _, m := range months {
		if m < 1 || m > 12 {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

// ParseMedications resolves a comma-separated medication list against the
// discovered columns. Empty input is a valid "no selection". Matching is
// case-insensitive; the returned names use the dataset's spelling.
func ParseMedications(input string, available []string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	canonical := make(map[string]string, len(available))
	for _, name := range available {
		canonical[strings.ToLower(name)] = name
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(available))
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, ok := canonical[strings.ToLower(part)]
		if !ok {
			return nil, fmt.Errorf("unknown medication %q (available: %s)", part, strings.Join(available, ", "))
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// ParseIntRange parses "a-b" or a single "a" into an inclusive range.
func ParseIntRange(input string) (int, int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, 0, fmt.Errorf("empty range")
	}
	parts := strings.SplitN(input, "-", 2)
	low, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", input)
	}
	if len(parts) == 1 {
		return low, low, nil
	}
	high, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", input)
	}
	if high < low {
		low, high = high, low
	}
	return low, high, nil
}

// ParseMonths parses a comma-separated month list (1-12).
func ParseMonths(input string) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("select at least one month")
	}
	var months []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m, err := strconv.Atoi(part)
		if err != nil || m < 1 || m > 12 {
			return nil, fmt.Errorf("invalid month %q (use 1-12)", part)
		}
		months = append(months, m)
	}
	if len(months) == 0 {
		return nil, fmt.Errorf("select at least one month")
	}
	return normalizeMonths(months), nil
}

// MedicationsString formats the medication selection for display and inputs.
func (p FilterParams) MedicationsString() string {
	return strings.Join(p.Medications, ", ")
}

// YearsString formats the year range as "min-max".
func (p FilterParams) YearsString() string {
	if p.YearMin == p.YearMax {
		return strconv.Itoa(p.YearMin)
	}
	return fmt.Sprintf("%d-%d", p.YearMin, p.YearMax)
}

// MonthsString formats the month selection as a comma list.
func (p FilterParams) MonthsString() string {
	parts := make([]string, len(p.Months))
	for i, m := range p.Months {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}

// DaysString formats the day range as "min-max".
func (p FilterParams) DaysString() string {
	if p.DayMin == p.DayMax {
		return strconv.Itoa(p.DayMin)
	}
	return fmt.Sprintf("%d-%d", p.DayMin, p.DayMax)
}
