package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridpack/pkg/board"
	"github.com/matzehuels/gridpack/pkg/grid"
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

// widgetColors cycles across widgets so neighbours stay distinguishable.
var widgetColors = []lipgloss.Color{
	lipgloss.Color("75"),
	lipgloss.Color("176"),
	lipgloss.Color("114"),
	lipgloss.Color("215"),
	lipgloss.Color("80"),
	lipgloss.Color("183"),
}

// =============================================================================
// Public Styles
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

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleGridFrame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	styleEmptyCell  = lipgloss.NewStyle().Foreground(colorDim)
	stylePreviewOK  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	stylePreviewBad = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleCursor     = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
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

// printCacheStatus prints whether a result came from the cache.
func printCacheStatus(cached bool) {
	if cached {
		fmt.Println("  " + styleCached.Render(iconCached))
		return
	}
	fmt.Println("  " + styleComputed.Render(iconFresh))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Board Rendering
// =============================================================================

// gridOverlay marks cells on top of a rendered board.
type gridOverlay struct {
	preview *grid.Rect     // candidate placement
	fits    bool           // whether preview is a valid placement
	cursor  *grid.Position // pointer cell
}

// widgetTag returns the two-character cell tag for widget i.
func widgetTag(i int) string {
	r := rune('A' + i%26)
	return string([]rune{r, r})
}

// renderBoard draws the grid with one tag per widget cell and a legend.
// Cells claimed by more than one widget are drawn as "!!".
func renderBoard(b *board.Board, ov gridOverlay) string {
	cols, rows := b.Grid.Columns, b.Grid.Rows
	owner := make([]int, cols*rows)
	for i := range owner {
		owner[i] = -1
	}
	const conflict = -2

	for i, w := range b.Widgets {
		for _, c := range grid.CellsOf(w.Item().Rect().Clip(cols, rows)) {
			k := c.Y*cols + c.X
			if owner[k] == -1 {
				owner[k] = i
			} else {
				owner[k] = conflict
			}
		}
	}

	previewCells := map[grid.Position]bool{}
	if ov.preview != nil {
		for _, c := range grid.CellsOf(ov.preview.Clip(cols, rows)) {
			previewCells[c] = true
		}
	}

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			p := grid.Position{X: x, Y: y}
			k := y*cols + x
			switch {
			case ov.cursor != nil && *ov.cursor == p:
				sb.WriteString(styleCursor.Render("<>"))
			case previewCells[p] && ov.fits:
				sb.WriteString(stylePreviewOK.Render("▓▓"))
			case previewCells[p]:
				sb.WriteString(stylePreviewBad.Render("▓▓"))
			case owner[k] == conflict:
				sb.WriteString(styleIconError.Render("!!"))
			case owner[k] >= 0:
				color := widgetColors[owner[k]%len(widgetColors)]
				sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(widgetTag(owner[k])))
			default:
				sb.WriteString(styleEmptyCell.Render("··"))
			}
		}
	}

	out := styleGridFrame.Render(sb.String())
	if legend := renderLegend(b); legend != "" {
		out += "\n" + legend
	}
	return out
}

// renderLegend lists each widget with its tag, size and position.
func renderLegend(b *board.Board) string {
	lines := make([]string, 0, len(b.Widgets))
	for i, w := range b.Widgets {
		color := widgetColors[i%len(widgetColors)]
		line := fmt.Sprintf("%s %-16s %dx%d at (%d,%d)",
			lipgloss.NewStyle().Foreground(color).Render(widgetTag(i)),
			w.DisplayLabel(), w.Width, w.Height, w.X, w.Y)
		if w.Item().Rect().Overflows(b.Grid) {
			line += " " + StyleWarning.Render("overflows")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
