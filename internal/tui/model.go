// Package tui provides the Bubble Tea dashboard interface.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/avolkau/meddash/internal/analysis"
	"github.com/avolkau/meddash/internal/dataset"
	"github.com/avolkau/meddash/internal/store"
)

const (
	tabTimeSeries = iota
	tabWeekly
	tabStats
	tabData
)

const maxListedPresets = 9

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3A8AC8"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C8A23A"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3A8AC8")).
			Padding(1, 2)
)

const selectMedicationsMessage = "Select at least one medication to analyze. Press / to open filters."

// Model implements the Bubble Tea dashboard.
type Model struct {
	data       *dataset.Table
	presets    *store.Store
	params     analysis.FilterParams
	subset     analysis.Subset
	plotHeight int
	smooth     int

	tabs       []string
	activeTab  int
	viewports  []viewport.Model
	dataTable  table.Model
	dataLayout tableLayout

	width  int
	height int

	errMsg string

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	saveMode  bool
	saveInput textinput.Model
	saveError string

	loadMode    bool
	loadDelete  bool
	loadPresets []store.Preset
	loadError   string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
	colCount int
}

// NewModel constructs the dashboard model. The table is loaded once by the
// caller and treated as immutable. presets may be nil when the preset store
// could not be opened; preset keys then surface an error instead.
func NewModel(data *dataset.Table, presets *store.Store, params analysis.FilterParams, plotHeight int) *Model {
	m := &Model{
		data:       data,
		presets:    presets,
		params:     params.Normalize(data),
		plotHeight: plotHeight,
		smooth:     1,
		tabs:       []string{"Time Series", "Weekly Pattern", "Statistics", "Data"},
	}
	if m.plotHeight <= 0 {
		m.plotHeight = 10
	}
	m.initInputs()
	m.initSaveInput()
	m.initDataTable()
	m.initViewports()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.saveMode {
			return m.updateSave(msg)
		}
		if m.loadMode {
			return m.updateLoad(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "s":
			return m.startSave()
		case "p":
			return m.startLoad()
		case "=":
			m.smooth++
			m.renderTabContents()
			return m, nil
		case "-":
			if m.smooth > 1 {
				m.smooth--
				m.renderTabContents()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabData {
				m.dataTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabData {
				m.dataTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabData {
				var cmd tea.Cmd
				m.dataTable, cmd = m.dataTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.saveMode {
		return fitLines(m.renderSaveModal(), m.width, m.height)
	}
	if m.loadMode {
		return fitLines(m.renderLoadModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newInput("Medications: "),
		newInput("Years (min-max): "),
		newInput("Months (1-12, comma list): "),
		newInput("Days (min-max): "),
	}
	m.setInputsFromParams()
}

func (m *Model) initSaveInput() {
	m.saveInput = newInput("Name: ")
	m.saveInput.Placeholder = "january-overview"
}

func (m *Model) initDataTable() {
	m.dataTable = table.New(table.WithHeight(1))
	m.dataTable.SetStyles(dataTableStyles())
}

func newInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromParams() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[0].SetValue(m.params.MedicationsString())
	m.filterInputs[1].SetValue(m.params.YearsString())
	m.filterInputs[2].SetValue(m.params.MonthsString())
	m.filterInputs[3].SetValue(m.params.DaysString())
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 2
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setDataTableSize(m.width, vpHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
	promptWidth := lipgloss.Width(m.saveInput.Prompt)
	m.saveInput.Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabData {
		m.dataTable.Focus()
	} else {
		m.dataTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	records := padLines(m.renderRecordSummary(), m.width)
	return tabs + "\n" + filters + "\n" + records
}

func (m *Model) renderFilterSummary() string {
	meds := m.params.MedicationsString()
	if meds == "" {
		meds = "none"
	}
	summary := fmt.Sprintf("Filters: meds=%s  years=%s  months=%s  days=%s  smooth=%d",
		meds, m.params.YearsString(), m.params.MonthsString(), m.params.DaysString(), m.smooth)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderRecordSummary() string {
	if m.subset.Empty() {
		return headerStyle.Render("Records: 0")
	}
	minDate, maxDate, _ := m.subset.DateRange()
	summary := fmt.Sprintf("Records: %d  Dates: %s to %s",
		m.subset.Len(), minDate.Format("2006-01-02"), maxDate.Format("2006-01-02"))
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Filters: /  Presets: s/p  Smooth: -/=  Quit: q"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filters (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, headerStyle.Render(fmt.Sprintf("Available medications: %s", strings.Join(m.data.Medications, ", "))))
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabData {
		switch {
		case len(m.params.Medications) == 0:
			return fitLines(warnStyle.Render(selectMedicationsMessage), m.width, height)
		case m.subset.Empty():
			return fitLines("No data available for the selected filters.", m.width, height)
		default:
			view := tableMutedStyle.Render(m.dataTable.View())
			return fitLines(view, m.width, height)
		}
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

// refresh recomputes the filtered subset and every derived view.
func (m *Model) refresh() {
	m.subset = analysis.Apply(m.data, m.params)
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.applyDataTable(width, bodyHeight)
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	if len(m.params.Medications) == 0 {
		warning := warnStyle.Render(selectMedicationsMessage)
		m.viewports[tabTimeSeries].SetContent(warning)
		m.viewports[tabWeekly].SetContent(warning)
		m.viewports[tabStats].SetContent(warning)
		return
	}
	m.viewports[tabTimeSeries].SetContent(m.renderTimeSeries(width))
	m.viewports[tabWeekly].SetContent(m.renderWeekly(width))
	m.viewports[tabStats].SetContent(m.renderStats())
}

func (m *Model) renderTimeSeries(width int) string {
	if m.subset.Empty() {
		return "No data available for the selected filters."
	}
	cards := m.renderSummaryCards(width)
	series := m.buildSeries()
	var buf bytes.Buffer
	if err := analysis.PlotSeriesWithColor(&buf, "Medication Usage Over Time", series, width, m.plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render plot: %v", err)
	}
	plot := strings.TrimRight(buf.String(), "\n")
	if plot == "" {
		plot = "No numeric values in the filtered subset."
	}
	return strings.TrimRight(cards+"\n\n"+plot, "\n")
}

// buildSeries collects per-medication values in date order, dropping null
// cells, and applies the smoothing window.
func (m *Model) buildSeries() []analysis.Series {
	rows := m.subset.SortedByDate()
	series := make([]analysis.Series, 0, len(m.params.Medications))
	for _, med := range m.params.Medications {
		source := m.data.Values[med]
		values := make([]float64, 0, len(rows))
		for _, row := range rows {
			v := source[row]
			if v != v { // NaN
				continue
			}
			values = append(values, v)
		}
		series = append(series, analysis.Series{
			Name:   med,
			Values: analysis.MovingAverage(values, m.smooth),
		})
	}
	return series
}

func (m *Model) renderSummaryCards(width int) string {
	minDate, maxDate, _ := m.subset.DateRange()
	cards := []string{
		metricCard("Records", fmt.Sprintf("%d", m.subset.Len())),
		metricCard("From", minDate.Format("2006-01-02")),
		metricCard("To", maxDate.Format("2006-01-02")),
		metricCard("Medications", fmt.Sprintf("%d", len(m.params.Medications))),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderWeekly(width int) string {
	if m.subset.Empty() {
		return "No data available for the selected filters."
	}
	means := analysis.AggregateWeekdays(m.subset, m.params.Medications)
	groups := make([]analysis.BarGroup, 0, len(means))
	for _, wm := range means {
		groups = append(groups, analysis.BarGroup{Label: wm.Weekday, Values: wm.Means})
	}
	var buf bytes.Buffer
	if err := analysis.RenderBarChart(&buf, "Average Usage by Weekday", m.params.Medications, groups, width, true); err != nil {
		return fmt.Sprintf("Failed to render bar chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderStats() string {
	if m.subset.Empty() {
		return "No data available for the selected filters."
	}
	var buf bytes.Buffer
	buf.WriteString("Statistical Summary\n")
	if err := analysis.RenderStatsTable(&buf, analysis.Describe(m.subset, m.params.Medications)); err != nil {
		return fmt.Sprintf("Failed to render statistics: %v", err)
	}
	buf.WriteString("\nMedication Correlations\n")
	if err := analysis.RenderCorrelation(&buf, analysis.Correlate(m.subset, m.params.Medications)); err != nil {
		return fmt.Sprintf("Failed to render correlations: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) applyDataTable(width, height int) {
	cols, rows := m.buildDataTableData()
	viewportHeight := maxInt(1, height-1)
	if m.dataLayout.width == width &&
		m.dataLayout.height == viewportHeight &&
		m.dataLayout.rowCount == len(rows) &&
		m.dataLayout.colCount == len(cols) {
		m.dataTable.SetRows(rows)
		return
	}
	m.dataTable.SetColumns(cols)
	m.dataTable.SetRows(rows)
	m.dataLayout.rowCount = len(rows)
	m.dataLayout.colCount = len(cols)
	m.setDataTableSize(width, height)
}

func (m *Model) setDataTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	m.dataLayout.width = width
	m.dataLayout.height = viewportHeight
	m.dataTable.SetWidth(width)
	m.dataTable.SetHeight(viewportHeight)
}

func (m *Model) buildDataTableData() ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Weekday", Width: 9},
	}
	for _, med := range m.params.Medications {
		columns = append(columns, table.Column{Title: med, Width: maxInt(8, runewidth.StringWidth(med))})
	}
	rows := make([]table.Row, 0, m.subset.Len())
	for _, idx := range m.subset.SortedByDate() {
		row := table.Row{
			m.data.Dates[idx].Format("2006-01-02"),
			m.data.WeekdayName(idx),
		}
		for _, med := range m.params.Medications {
			v := m.data.Values[med][idx]
			if v != v { // NaN
				row = append(row, "-")
			} else {
				row = append(row, fmt.Sprintf("%.1f", v))
			}
		}
		rows = append(rows, row)
	}
	return columns, rows
}

func dataTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromParams()
	return m, m.setFilterIndex(0)
}

func (m *Model) startSave() (tea.Model, tea.Cmd) {
	if m.presets == nil {
		m.errMsg = "preset store is unavailable"
		return m, nil
	}
	m.saveMode = true
	m.saveError = ""
	m.saveInput.SetValue("")
	return m, m.saveInput.Focus()
}

func (m *Model) startLoad() (tea.Model, tea.Cmd) {
	if m.presets == nil {
		m.errMsg = "preset store is unavailable"
		return m, nil
	}
	presets, err := m.presets.ListPresets(context.Background())
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to list presets: %v", err)
		return m, nil
	}
	m.loadMode = true
	m.loadDelete = false
	m.loadError = ""
	m.loadPresets = presets
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilterInputs(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refresh()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.saveMode = false
		m.saveError = ""
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.saveInput.Value())
		if name == "" {
			m.saveError = "preset name must not be empty"
			return m, nil
		}
		if _, err := m.presets.SavePreset(context.Background(), name, m.params); err != nil {
			m.saveError = fmt.Sprintf("failed to save preset: %v", err)
			return m, nil
		}
		m.saveMode = false
		m.saveError = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.saveInput, cmd = m.saveInput.Update(msg)
	return m, cmd
}

func (m *Model) updateLoad(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.loadMode = false
		m.loadError = ""
		return m, nil
	}
	key := msg.String()
	if key == "d" {
		m.loadDelete = !m.loadDelete
		return m, nil
	}
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 1 || idx > len(m.loadPresets) || idx > maxListedPresets {
		return m, nil
	}
	preset := m.loadPresets[idx-1]
	if m.loadDelete {
		if err := m.presets.DeletePreset(context.Background(), preset.ID); err != nil {
			m.loadError = fmt.Sprintf("failed to delete preset: %v", err)
			return m, nil
		}
		m.loadPresets = append(m.loadPresets[:idx-1], m.loadPresets[idx:]...)
		m.loadDelete = false
		return m, nil
	}
	m.applyPreset(preset)
	m.loadMode = false
	m.loadError = ""
	return m, nil
}

// applyPreset loads a saved filter set, dropping medications the current
// dataset does not have.
func (m *Model) applyPreset(preset store.Preset) {
	params := preset.Params
	known := map[string]struct{}{}
	for _, med := range m.data.Medications {
		known[med] = struct{}{}
	}
	kept := make([]string, 0, len(params.Medications))
	for _, med := range params.Medications {
		if _, ok := known[med]; ok {
			kept = append(kept, med)
		}
	}
	params.Medications = kept
	m.params = params.Normalize(m.data)
	m.refresh()
	m.updateLayout()
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilterInputs() error {
	medications, err := analysis.ParseMedications(m.filterInputs[0].Value(), m.data.Medications)
	if err != nil {
		return err
	}
	yearMin, yearMax, err := analysis.ParseIntRange(m.filterInputs[1].Value())
	if err != nil {
		return fmt.Errorf("invalid years (expected e.g. 2020-2023)")
	}
	months, err := analysis.ParseMonths(m.filterInputs[2].Value())
	if err != nil {
		return err
	}
	dayMin, dayMax, err := analysis.ParseIntRange(m.filterInputs[3].Value())
	if err != nil {
		return fmt.Errorf("invalid days (expected e.g. 1-31)")
	}
	if dayMin < 1 {
		return fmt.Errorf("days must start at 1 or later")
	}
	m.params = analysis.FilterParams{
		Medications: medications,
		YearMin:     yearMin,
		YearMax:     yearMax,
		Months:      months,
		DayMin:      dayMin,
		DayMax:      dayMax,
	}.Normalize(m.data)
	return nil
}

func (m *Model) renderSaveModal() string {
	title := cardValueStyle.Render("Save Preset")
	body := []string{
		title,
		m.saveInput.View(),
		headerStyle.Render("Enter to save / Esc to cancel"),
	}
	if m.saveError != "" {
		body = append(body, errorStyle.Render(m.saveError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderLoadModal() string {
	title := cardValueStyle.Render("Load Preset")
	if m.loadDelete {
		title = cardValueStyle.Render("Delete Preset")
	}
	body := []string{title}
	if len(m.loadPresets) == 0 {
		body = append(body, "No presets saved yet. Press s on the dashboard to save one.")
	}
	for i, preset := range m.loadPresets {
		if i >= maxListedPresets {
			break
		}
		meds := preset.Params.MedicationsString()
		if meds == "" {
			meds = "none"
		}
		line := fmt.Sprintf("%d. %s  (meds=%s years=%s months=%s days=%s)",
			i+1, preset.Name, meds, preset.Params.YearsString(), preset.Params.MonthsString(), preset.Params.DaysString())
		body = append(body, truncateLine(line, modalInnerWidth(m.width)))
	}
	help := "Press a number to load, d to toggle delete, esc to cancel"
	if m.loadDelete {
		help = "Press a number to DELETE, d to cancel delete, esc to close"
	}
	body = append(body, headerStyle.Render(help))
	if m.loadError != "" {
		body = append(body, errorStyle.Render(m.loadError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 90))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
