// Package output provides styling and formatting helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
)

// Styles provides styled output helpers for the CLI.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("2")).
		Bold().
		String()
}

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("1")).
		Bold().
		String()
}

// Bank returns a styled bank name (cyan + bold).
func (s *Styles) Bank(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("6")).
		Bold().
		String()
}

// Account returns a styled account name (yellow).
func (s *Styles) Account(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		String()
}

// Amount returns a formatted amount, red when negative and green otherwise.
func (s *Styles) Amount(text string, amount decimal.Decimal) string {
	color := "2"
	if amount.IsNegative() {
		color = "1"
	}
	return s.output.String(text).
		Foreground(s.output.Color(color)).
		String()
}

// ID returns a styled transaction id (magenta).
func (s *Styles) ID(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("5")).
		String()
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).
		Bold().
		String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).
		Faint().
		String()
}

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		Bold().
		String()
}

// Timing returns a styled timing string. Slow operations are red, the rest dimmed.
func (s *Styles) Timing(text string, isSlowOperation bool) string {
	if isSlowOperation {
		return s.output.String(text).
			Foreground(s.output.Color("1")).
			String()
	}
	return s.Dim(text)
}

// Output returns the underlying termenv Output for advanced usage.
func (s *Styles) Output() *termenv.Output {
	return s.output
}
