package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/parcelview/pkg/engine"
	"github.com/matzehuels/parcelview/pkg/parcel"
	"github.com/matzehuels/parcelview/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleEngine   = lipgloss.NewStyle().Foreground(colorGreen)
	styleEstimate = lipgloss.NewStyle().Foreground(colorYellow)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess  = "✓"
	iconError    = "✗"
	iconWarning  = "!"
	iconInfo     = "›"
	iconArrow    = "→"
	iconEngine   = "packed"
	iconEstimate = "estimated"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Parcel Display
// =============================================================================

// formatEstimate renders an envelope as "L × W × H cm".
func formatEstimate(e parcel.Estimate) string {
	return fmt.Sprintf("%s × %s × %s cm", formatCm(e.LengthCm), formatCm(e.WidthCm), formatCm(e.HeightCm))
}

func formatCm(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}

// printEstimate prints the envelope block shared by estimate-style commands.
func printEstimate(e parcel.Estimate) {
	printKeyValue("Size", formatEstimate(e))
	printKeyValue("Size sum", formatCm(e.SizeSum())+" cm")
	printKeyValue("Weight", fmt.Sprintf("%d g", e.WeightG))
	printKeyValue("Items", fmt.Sprintf("%d", e.ItemCount))
}

// printResult prints the outcome of a preview run on a single status line.
func printResult(res *pipeline.Result) {
	if !res.HasEstimate && res.Packed == nil && res.Scene.Empty() {
		printWarning("Cart is empty")
		return
	}

	source, sourceStyle := iconEngine, styleEngine
	if res.Fallback {
		source, sourceStyle = iconEstimate, styleEstimate
	}

	parts := []string{
		fmt.Sprintf("%d boxes", len(res.Scene.Items)),
		fmt.Sprintf("scale %.2f", res.Scene.Scale),
	}
	if res.Scene.Reference != nil {
		parts = append(parts, "next to "+strings.ToLower(res.Scene.Reference.Model.Label))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + sourceStyle.Render(source)
	fmt.Println(line)

	if res.Err != nil {
		printWarning("Engine unavailable, showing estimate: %v", res.Err)
	}
}

// printRates prints the recommended carrier and a table of every option.
func printRates(rates *engine.RateResult) {
	if rates == nil || len(rates.Options) == 0 {
		return
	}
	if best, ok := rates.Best(); ok {
		printKeyValue("Ship with", fmt.Sprintf("%s (¥%d)", best.ServiceName, best.PriceYen))
	}
	fmt.Println(renderTable([]string{"", "Service", "Carrier", "Price", "Tracking"}, rateRows(rates.Options)))
}

func rateRows(opts []engine.RateOption) [][]string {
	rows := make([][]string, len(opts))
	for i, o := range opts {
		mark, tracking := "", "no"
		if o.Recommended {
			mark = iconSuccess
		}
		if o.HasTracking {
			tracking = "yes"
		}
		rows[i] = []string{mark, o.ServiceName, o.CompanyName, fmt.Sprintf("¥%d", o.PriceYen), tracking}
	}
	return rows
}

// =============================================================================
// Tables
// =============================================================================

// renderTable builds a rounded lipgloss table.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		}).
		String()
}
