// Package main provides the CLI entrypoint for meddash.
package main

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avolkau/meddash/internal/analysis"
	"github.com/avolkau/meddash/internal/config"
	"github.com/avolkau/meddash/internal/dataset"
	"github.com/avolkau/meddash/internal/store"
	"github.com/avolkau/meddash/internal/tui"
)

const (
	defaultDelimiter   = ","
	defaultPlotHeight  = 10
	defaultSampleRows  = 365
	defaultSampleMeds  = "Paracetamol,Ibuprofen,Aspirin,Amoxicillin"
	defaultSampleStart = "2023-01-01"
)

var (
	dashData       string
	dashDelimiter  string
	dashDateFormat string
	dashPlotHeight int

	reportMeds   string
	reportYears  string
	reportMonths string
	reportDays   string
	reportPlot   bool

	sampleOut   string
	sampleRows  int
	sampleMeds  string
	sampleSeed  int64
	sampleStart string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "meddash",
		Short:         "Terminal medication usage dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dashData, "data", "", "dataset path (delimited file with a Date column)")
	rootCmd.PersistentFlags().StringVar(&dashDelimiter, "delimiter", defaultDelimiter, "field delimiter")
	rootCmd.PersistentFlags().StringVar(&dashDateFormat, "date-format", "", "explicit Go date layout (default tries common formats)")
	rootCmd.Flags().IntVar(&dashPlotHeight, "plot-height", defaultPlotHeight, "plot height in rows")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newSampleCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data", &dashData, fileCfg.Dashboard.Data)
	applyStringConfig(cmd, "delimiter", &dashDelimiter, fileCfg.Dashboard.Delimiter)
	applyStringConfig(cmd, "date-format", &dashDateFormat, fileCfg.Dashboard.DateFormat)
	applyIntConfig(cmd, "plot-height", &dashPlotHeight, fileCfg.Dashboard.PlotHeight)

	table, err := loadDataset()
	if err != nil {
		return err
	}
	if dashPlotHeight < 1 {
		return fmt.Errorf("--plot-height must be >= 1")
	}

	var presets *store.Store
	presets, err = store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open preset store: %v\n", err)
		presets = nil
	}
	defer func() {
		if presets == nil {
			return
		}
		if cerr := presets.Close(); cerr != nil {
			logErrf("failed to close preset store: %v\n", cerr)
		}
	}()

	model := tui.NewModel(table, presets, analysis.DefaultParams(table), dashPlotHeight)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a non-interactive analysis report",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().StringVar(&reportMeds, "meds", "", "comma-separated medications (default: first discovered)")
	cmd.Flags().StringVar(&reportYears, "years", "", "year range, e.g. 2020-2023 (default: full dataset range)")
	cmd.Flags().StringVar(&reportMonths, "months", "1", "comma-separated months 1-12")
	cmd.Flags().StringVar(&reportDays, "days", "", "day range, e.g. 1-31 (default: full range under the month cap)")
	cmd.Flags().BoolVar(&reportPlot, "plot", false, "include the time-series plot")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data", &dashData, fileCfg.Dashboard.Data)
	applyStringConfig(cmd, "delimiter", &dashDelimiter, fileCfg.Dashboard.Delimiter)
	applyStringConfig(cmd, "date-format", &dashDateFormat, fileCfg.Dashboard.DateFormat)

	table, err := loadDataset()
	if err != nil {
		return err
	}

	params, err := reportParams(cmd, table)
	if err != nil {
		return err
	}
	if len(params.Medications) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Select at least one medication to analyze.")
		return nil
	}

	subset := analysis.Apply(table, params)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Medication Usage Analysis")
	fmt.Fprintf(out, "Filters: meds=%s  years=%s  months=%s  days=%s\n\n",
		params.MedicationsString(), params.YearsString(), params.MonthsString(), params.DaysString())
	if err := analysis.RenderSummary(out, subset); err != nil {
		return err
	}
	if subset.Empty() {
		return nil
	}

	if reportPlot {
		fmt.Fprintln(out, "")
		series := make([]analysis.Series, 0, len(params.Medications))
		for _, med := range params.Medications {
			values := make([]float64, 0, subset.Len())
			for _, v := range subset.Column(med) {
				if !math.IsNaN(v) {
					values = append(values, v)
				}
			}
			series = append(series, analysis.Series{Name: med, Values: values})
		}
		if err := analysis.PlotSeries(out, "Medication Usage Over Time", series, 0, defaultPlotHeight); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nAverage Usage by Weekday")
	means := analysis.AggregateWeekdays(subset, params.Medications)
	if err := analysis.RenderWeekdayTable(out, params.Medications, means); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nStatistical Summary")
	if err := analysis.RenderStatsTable(out, analysis.Describe(subset, params.Medications)); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nMedication Correlations")
	return analysis.RenderCorrelation(out, analysis.Correlate(subset, params.Medications))
}

func reportParams(cmd *cobra.Command, table *dataset.Table) (analysis.FilterParams, error) {
	params := analysis.DefaultParams(table)
	if cmd.Flags().Changed("meds") {
		meds, err := analysis.ParseMedications(reportMeds, table.Medications)
		if err != nil {
			return analysis.FilterParams{}, err
		}
		params.Medications = meds
	}
	if reportYears != "" {
		yearMin, yearMax, err := analysis.ParseIntRange(reportYears)
		if err != nil {
			return analysis.FilterParams{}, fmt.Errorf("invalid --years value: %w", err)
		}
		params.YearMin, params.YearMax = yearMin, yearMax
	}
	months, err := analysis.ParseMonths(reportMonths)
	if err != nil {
		return analysis.FilterParams{}, fmt.Errorf("invalid --months value: %w", err)
	}
	params.Months = months
	if reportDays != "" {
		dayMin, dayMax, err := analysis.ParseIntRange(reportDays)
		if err != nil {
			return analysis.FilterParams{}, fmt.Errorf("invalid --days value: %w", err)
		}
		params.DayMin, params.DayMax = dayMin, dayMax
	} else {
		params.DayMin, params.DayMax = 1, analysis.MaxDay(months)
	}
	return params.Normalize(table), nil
}

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic dataset",
		Args:  cobra.NoArgs,
		RunE:  runSampleCmd,
	}
	cmd.Flags().StringVar(&sampleOut, "out", "pharma.csv", "output path")
	cmd.Flags().IntVar(&sampleRows, "rows", defaultSampleRows, "number of daily rows")
	cmd.Flags().StringVar(&sampleMeds, "meds", defaultSampleMeds, "comma-separated medication names")
	cmd.Flags().Int64Var(&sampleSeed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().StringVar(&sampleStart, "start", defaultSampleStart, "first date (YYYY-MM-DD)")
	return cmd
}

func runSampleCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "rows", &sampleRows, fileCfg.Sample.Rows)
	applyStringConfig(cmd, "meds", &sampleMeds, fileCfg.Sample.Medications)
	applyInt64Config(cmd, "seed", &sampleSeed, fileCfg.Sample.Seed)

	if sampleRows <= 0 {
		return fmt.Errorf("--rows must be greater than 0")
	}
	medications := splitMedications(sampleMeds)
	if len(medications) == 0 {
		return fmt.Errorf("--meds must name at least one medication")
	}
	start, err := time.ParseInLocation("2006-01-02", sampleStart, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid --start value: %w", err)
	}

	gen := dataset.NewGenerator(sampleSeed)
	rows := gen.Generate(medications, start, sampleRows)
	if err := dataset.WriteCSV(sampleOut, medications, rows); err != nil {
		return err
	}
	logErrf("Wrote %s (%d rows, %d medications)\n", sampleOut, len(rows), len(medications))
	return nil
}

func loadDataset() (*dataset.Table, error) {
	if strings.TrimSpace(dashData) == "" {
		return nil, fmt.Errorf("no dataset: pass --data or set data in %s", config.DefaultConfigPath())
	}
	delimiter, err := parseDelimiter(dashDelimiter)
	if err != nil {
		return nil, err
	}
	table, err := dataset.Load(dashData, dataset.Options{
		Delimiter:  delimiter,
		DateFormat: dashDateFormat,
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func parseDelimiter(value string) (rune, error) {
	if value == "\\t" || value == "tab" {
		return '\t', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("--delimiter must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}

func splitMedications(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

// flagChanged checks both local and persistent flags for an override.
func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) {
		return true
	}
	root := cmd.Root()
	return root != nil && root.PersistentFlags().Changed(name)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# meddash configuration
# Uncomment a value to enable it. CLI flags override config values.

[dashboard]
# data = "pharma.csv"       # Dataset path
# delimiter = %q            # Field delimiter
# date-format = ""          # Explicit Go date layout (empty tries common formats)
# plot-height = %d          # Plot height in rows

[sample]
# rows = %d                 # Daily rows to generate
# medications = %q          # Medication column names
# seed = 0                  # Random seed (0 uses the clock)
`,
		defaultDelimiter,
		defaultPlotHeight,
		defaultSampleRows,
		defaultSampleMeds,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
