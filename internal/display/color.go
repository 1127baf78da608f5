// Package display renders plain terminal output for the one-shot commands:
// ANSI colors, aligned tables, progress bars and wrapped paragraphs.
//
// Colors follow NO_COLOR (https://no-color.org/) and are turned off when
// stdout is not a terminal.
package display

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	red     = "\033[31m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	magenta = "\033[35m"
	cyan    = "\033[36m"
	fgGray  = "\033[90m"
)

var enabled = shouldEnable()

func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of stdout, or fallback when unknown.
func Width(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// SetEnabled overrides the detected color state. --json turns colors off.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether color output is active.
func Enabled() bool {
	return enabled
}

func wrap(code, text string) string {
	if !enabled {
		return text
	}
	return code + text + reset
}

func Bold(text string) string    { return wrap(bold, text) }
func Dim(text string) string     { return wrap(dim, text) }
func Red(text string) string     { return wrap(red, text) }
func Green(text string) string   { return wrap(green, text) }
func Yellow(text string) string  { return wrap(yellow, text) }
func Magenta(text string) string { return wrap(magenta, text) }
func Cyan(text string) string    { return wrap(cyan, text) }
func Gray(text string) string    { return wrap(fgGray, text) }

// Accent highlights the current day and the active countdown.
func Accent(text string) string {
	if !enabled {
		return text
	}
	return bold + cyan + text + reset
}

// Boldf formats and bolds a string.
func Boldf(format string, a ...any) string {
	return Bold(fmt.Sprintf(format, a...))
}

// Warnf formats a warning line for stderr.
func Warnf(format string, a ...any) string {
	return Yellow("warning: " + fmt.Sprintf(format, a...))
}
