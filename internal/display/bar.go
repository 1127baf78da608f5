package display

import (
	"math"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// ProgressBar draws percent (0-100) as a bar of width cells.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = math.Max(0, math.Min(100, percent))
	filled := int(math.Round(percent / 100 * float64(width)))

	return Green(strings.Repeat("█", filled)) + Gray(strings.Repeat("░", width-filled))
}

// Paragraph word-wraps text to width and indents every line by pad spaces.
func Paragraph(text string, width, pad int) string {
	if width > pad {
		text = wordwrap.String(text, width-pad)
	}
	return indent.String(text, uint(pad))
}
