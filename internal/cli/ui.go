package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Tables
// =============================================================================

// summaryRow is one checked configuration in the check summary.
type summaryRow struct {
	name          string
	configuration string
	edges         int
	framework     int
	skiko         int
	status        checkStatus
}

type checkStatus string

const (
	statusOK        checkStatus = "ok"
	statusWarning   checkStatus = "warning"
	statusSkipped   checkStatus = "skipped"
	statusRecovered checkStatus = "recovered"
)

// renderSummary renders the check summary table.
func renderSummary(rows []summaryRow) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.name, r.configuration, strconv.Itoa(r.edges),
			strconv.Itoa(r.framework), strconv.Itoa(r.skiko), string(r.status)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Check", "Configuration", "Edges", "Compose", "Skiko", "Status").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col != 5 || row < 0 || row >= len(rows) {
				return base
			}
			switch rows[row].status {
			case statusOK:
				return base.Foreground(colorGreen)
			case statusWarning, statusRecovered:
				return base.Foreground(colorYellow)
			}
			return base.Foreground(colorDim)
		})
	return t.Render()
}

// taskRow is one line of the tasks listing.
type taskRow struct {
	target, compilation, configuration, task, note string
}

func renderTasks(rows []taskRow) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.target, r.compilation, r.configuration, r.task, r.note}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Target", "Compilation", "Configuration", "Task", "").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && rows[row].task == "" {
				return lipgloss.NewStyle().Padding(0, 1).Foreground(colorDim)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
