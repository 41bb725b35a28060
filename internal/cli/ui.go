package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleKey    = lipgloss.NewStyle().Foreground(colorGray)
	styleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleCenter = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorWhite)
)

// printTitle writes a bold heading line.
func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

// printKV writes an aligned "key  value" line.
func printKV(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %s\n", styleKey.Render(fmt.Sprintf("%-14s", key)), styleValue.Render(fmt.Sprint(value)))
}

// printNumber writes an aligned "key  number" line with two decimals.
func printNumber(w io.Writer, key string, v float64) {
	fmt.Fprintf(w, "  %s %s\n", styleKey.Render(fmt.Sprintf("%-14s", key)), styleNumber.Render(fmt.Sprintf("%.2f", v)))
}
