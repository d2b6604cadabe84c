// Package output provides output formatting for Lifeledger.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/shopspring/decimal"

	"github.com/manav03panchal/lifeledger/internal/model"
)

// Format represents the output format type.
type Format string

const (
	FormatCLI   Format = "cli"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ColorMode represents the color output mode.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseFormat maps a --format flag value to a Format. Unknown values are CLI.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatJSON, FormatPlain:
		return Format(s)
	default:
		return FormatCLI
	}
}

// ParseColorMode maps a --color flag value to a ColorMode. Unknown values are auto.
func ParseColorMode(s string) ColorMode {
	switch ColorMode(s) {
	case ColorAlways, ColorNever:
		return ColorMode(s)
	default:
		return ColorAuto
	}
}

// Formatter handles output formatting.
type Formatter struct {
	Writer    io.Writer
	Format    Format
	ColorMode ColorMode
	// Currency is the code shown next to amounts.
	Currency string
	// Now is the reference time for relative dates.
	Now func() time.Time
}

// NewFormatter creates a new formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		Writer:    os.Stdout,
		Format:    FormatCLI,
		ColorMode: ColorAuto,
		Currency:  "USD",
		Now:       time.Now,
	}
}

// IsColorEnabled returns true if color output is enabled.
func (f *Formatter) IsColorEnabled() bool {
	if f.Format == FormatPlain {
		return false
	}
	switch f.ColorMode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if w, ok := f.Writer.(*os.File); ok {
			return isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
		}
		return false
	}
}

func (f *Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// Print outputs formatted text.
func (f *Formatter) Print(a ...any) {
	fmt.Fprint(f.Writer, a...)
}

// Println outputs formatted text with newline.
func (f *Formatter) Println(a ...any) {
	fmt.Fprintln(f.Writer, a...)
}

// Printf outputs formatted text.
func (f *Formatter) Printf(format string, a ...any) {
	fmt.Fprintf(f.Writer, format, a...)
}

// JSON outputs data as indented JSON.
func (f *Formatter) JSON(v any) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatMoney renders an amount with two decimals and a currency code.
func FormatMoney(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.StringFixed(2)
	}
	return d.StringFixed(2) + " " + currency
}

// FormatPercent renders a fraction in [0, 1] (or beyond) as a percentage.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

// FormatDate formats epoch milliseconds as a local date.
func FormatDate(ms int64) string {
	return model.FromMillis(ms).Format("2006-01-02")
}

// FormatDateTime formats epoch milliseconds as a local date and time.
func FormatDateTime(ms int64) string {
	return model.FromMillis(ms).Format("2006-01-02 15:04")
}

// FormatTimeOnly formats epoch milliseconds as a local clock time.
func FormatTimeOnly(ms int64) string {
	return model.FromMillis(ms).Format("15:04")
}

// ShortID returns the first eight characters of an id for table display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
