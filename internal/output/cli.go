package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for CLI output.
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleAccent = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Accent highlights a name.
func (c *CLIFormatter) Accent(text string) string {
	return c.render(styleAccent, text)
}

// Colored renders text in a hex color such as a goal or priority color.
func (c *CLIFormatter) Colored(hex, text string) string {
	if hex == "" {
		return text
	}
	return c.render(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)), text)
}

// Good renders text in the success color.
func (c *CLIFormatter) Good(text string) string {
	return c.render(styleSuccess, text)
}

// Bad renders text in the error color.
func (c *CLIFormatter) Bad(text string) string {
	return c.render(styleError, text)
}

// ProgressBar creates a simple progress bar for a fraction in [0, 1].
func ProgressBar(fraction float64, width int) string {
	if fraction > 1 {
		fraction = 1
	}
	if fraction < 0 {
		fraction = 0
	}

	filled := int(float64(width) * fraction)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// TableRow is one row of PrintTable output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple aligned table. Widths are measured in terminal
// cells, ignoring ANSI styling, so colored cells and emoji line up.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if w := lipgloss.Width(col); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)) + "  "
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]))
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var line strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				line.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(line.String(), " "))
	}
}

// KeyValue prints an indented "label: value" line.
func (c *CLIFormatter) KeyValue(label string, value any) {
	c.Printf("  %s %v\n", c.render(styleMuted, fmt.Sprintf("%-14s", label+":")), value)
}
