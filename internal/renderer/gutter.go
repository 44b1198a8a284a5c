package renderer

import (
	"strconv"
	"strings"
)

// minGutterDigits keeps short documents from shifting the text when they
// grow past nine lines.
const minGutterDigits = 3

// gutterWidth returns the gutter column count, separator included.
func (r *Renderer) gutterWidth(lineCount int) int {
	if !r.opts.ShowLineNumbers {
		return 0
	}
	if r.opts.GutterWidth > 0 {
		return r.opts.GutterWidth
	}

	digits := 1
	for n := lineCount; n >= 10; n /= 10 {
		digits++
	}
	if digits < minGutterDigits {
		digits = minGutterDigits
	}
	return digits + 1 // +1 for separator
}

// formatLineNumber right-aligns a 1-based line number in width columns.
// Numbers wider than the column keep their low digits.
func formatLineNumber(num, width int) string {
	if width <= 0 {
		return ""
	}
	s := strconv.Itoa(num)
	if len(s) > width {
		return s[len(s)-width:]
	}
	return strings.Repeat(" ", width-len(s)) + s
}
