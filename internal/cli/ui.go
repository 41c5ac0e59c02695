package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
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

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// ui prints styled status lines. Command results go to the CLI's out
// writer instead, so they can be piped.
type ui struct {
	w io.Writer
}

func newUI(w io.Writer) *ui { return &ui{w: w} }

func (u *ui) line(s string) { fmt.Fprintln(u.w, s) }

func (u *ui) success(format string, args ...any) {
	u.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (u *ui) error(format string, args ...any) {
	u.line(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func (u *ui) warning(format string, args ...any) {
	u.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (u *ui) info(format string, args ...any) {
	u.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (u *ui) detail(format string, args ...any) {
	u.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (u *ui) file(path string) {
	u.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (u *ui) keyValue(key, value string) {
	u.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// stats prints chart statistics on a single line. Counts are unknown when
// every artifact came from the cache.
func (u *ui) stats(series, labels int, cached bool) {
	var parts []string
	if !cached {
		parts = append(parts, fmt.Sprintf("%d series", series), fmt.Sprintf("%d labels", labels))
	}
	status := styleComputed.Render(iconFresh)
	if cached {
		status = styleCached.Render(iconCached)
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	parts = append(parts, status)
	u.line("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// nextStep prints a suggested next command.
func (u *ui) nextStep(description, cmd string) {
	u.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
