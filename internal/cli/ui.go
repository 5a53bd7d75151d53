package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette and Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220") // also the highlighted reporting path
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StylePath      = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconUp      = "↑"
)

// =============================================================================
// printer
// =============================================================================

// printer writes styled status lines. Commands print status to the CLI's
// status stream and results to the command's stdout, so piping a result
// never picks up decoration.
type printer struct{ w io.Writer }

func (p printer) println(s string) { fmt.Fprintln(p.w, s) }

func (p printer) success(format string, args ...any) {
	p.println(styleOK.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) fail(format string, args ...any) {
	p.println(styleFail.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func (p printer) warn(format string, args ...any) {
	p.println(StyleWarning.Render(iconWarning + " " + fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.println(styleNote.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (p printer) detail(format string, args ...any) {
	p.println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (p printer) file(path string) {
	p.println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// nextStep suggests the command to run next.
func (p printer) nextStep(description, cmd string) {
	p.println("")
	p.println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// stats prints chart statistics on one line.
func (p printer) stats(employees, edges int, mode string, cached bool) {
	p.println(formatStats(employees, edges, mode, cached))
}

// formatStats renders e.g. "4 employees · 3 reporting lines · tree · cached".
func formatStats(employees, edges int, mode string, cached bool) string {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d employees", employees))}
	if edges > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d reporting lines", edges)))
	}
	if mode != "" {
		parts = append(parts, StyleDim.Render(mode))
	}
	if cached {
		parts = append(parts, styleOK.Render("cached"))
	} else {
		parts = append(parts, styleNote.Render("fresh"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}
