package analysis

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// BarGroup is one labeled group of bars, index-aligned with the series names
// passed to RenderBarChart.
type BarGroup struct {
	Label  string
	Values []float64
}

const (
	minBarArea    = 8
	barValueWidth = 9
)

// partialBlocks holds eighth-block runes for sub-cell bar endings.
var partialBlocks = []rune("▏▎▍▌▋▊▉█")

// RenderBarChart renders grouped horizontal bars. All bars share one scale
// (the maximum value across every group), so group heights are comparable.
// Null values render as a dash without a bar.
func RenderBarChart(w io.Writer, title string, seriesNames []string, groups []BarGroup, width int, forceColor bool) error {
	if len(groups) == 0 || len(seriesNames) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth()
	}
	useColor := shouldUseColor(w, forceColor)

	nameWidth := 0
	for _, name := range seriesNames {
		if w := runewidth.StringWidth(name); w > nameWidth {
			nameWidth = w
		}
	}
	barArea := width - nameWidth - barValueWidth - 4
	if barArea < minBarArea {
		barArea = minBarArea
	}

	maxValue := 0.0
	for _, group := range groups {
		for _, v := range group.Values {
			if !math.IsNaN(v) && v > maxValue {
				maxValue = v
			}
		}
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, group := range groups {
		if _, err := fmt.Fprintln(w, group.Label); err != nil {
			return err
		}
		for i, name := range seriesNames {
			value := math.NaN()
			if i < len(group.Values) {
				value = group.Values[i]
			}
			line := fmt.Sprintf("  %s  %s", padCell(name, nameWidth, false), barLine(value, maxValue, barArea, i, useColor))
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func barLine(value, maxValue float64, barArea, seriesIdx int, useColor bool) string {
	if math.IsNaN(value) {
		return "-"
	}
	bar := barString(value, maxValue, barArea)
	if useColor && bar != "" {
		color := colorPalette[seriesIdx%len(colorPalette)].code
		bar = color + bar + colorReset
	}
	if bar == "" {
		return fmt.Sprintf("%.2f", value)
	}
	return fmt.Sprintf("%s %.2f", bar, value)
}

// barString builds a bar of full blocks plus one eighth-block remainder.
func barString(value, maxValue float64, barArea int) string {
	if maxValue <= 0 || value <= 0 || barArea <= 0 {
		return ""
	}
	cells := value / maxValue * float64(barArea)
	full := int(cells)
	if full > barArea {
		full = barArea
	}
	var b strings.Builder
	for i := 0; i < full; i++ {
		b.WriteRune('█')
	}
	if full < barArea {
		remainder := cells - float64(full)
		idx := int(remainder * float64(len(partialBlocks)))
		if idx > 0 {
			if idx >= len(partialBlocks) {
				idx = len(partialBlocks) - 1
			}
			b.WriteRune(partialBlocks[idx-1])
		}
	}
	if b.Len() == 0 {
		b.WriteRune(partialBlocks[0])
	}
	return b.String()
}
