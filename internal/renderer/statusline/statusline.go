// Package statusline formats the status and message bars shown under the
// text area.
package statusline

import (
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/quill/internal/renderer"
)

// MessageTimeout is how long a message stays on the message bar.
const MessageTimeout = 5 * time.Second

// maxNameWidth bounds the file name shown on the status bar.
const maxNameWidth = 20

// Info is the session state the bars display.
type Info struct {
	Filename string
	Modified bool
	ReadOnly bool
	Lines    int

	// Line is the 0-based cursor line.
	Line int

	// Profile is the active language profile name, empty for plain text.
	Profile string

	Message     string
	MessageTime time.Time
}

// BarCount is the number of rows Bars returns.
const BarCount = 2

// Bars returns the status bar and the message bar.
func Bars(info Info, width int, now time.Time) []renderer.Bar {
	return []renderer.Bar{
		StatusBar(info, width),
		MessageBar(info, now),
	}
}

// StatusBar renders file name, line count and modified flag on the left and
// the language and cursor line on the right.
func StatusBar(info Info, width int) renderer.Bar {
	name := info.Filename
	if name == "" {
		name = "[No Name]"
	}
	name = runewidth.Truncate(name, maxNameWidth, "")

	left := name + " - " + strconv.Itoa(info.Lines) + " lines"
	if info.Modified {
		left += " (modified)"
	}
	if info.ReadOnly {
		left += " [RO]"
	}

	profile := info.Profile
	if profile == "" {
		profile = "no ft"
	}
	right := profile + " | " + strconv.Itoa(info.Line+1) + "/" + strconv.Itoa(info.Lines)

	left = runewidth.Truncate(left, width, "")
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		return renderer.Bar{Text: left, Inverse: true}
	}
	return renderer.Bar{Text: left + strings.Repeat(" ", gap) + right, Inverse: true}
}

// MessageBar shows the last message until it expires.
func MessageBar(info Info, now time.Time) renderer.Bar {
	if info.Message == "" || now.Sub(info.MessageTime) >= MessageTimeout {
		return renderer.Bar{}
	}
	return renderer.Bar{Text: info.Message}
}
