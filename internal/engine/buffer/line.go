package buffer

import (
	"errors"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// ControlPlaceholder replaces characters that have no printable form.
const ControlPlaceholder = '?'

// ErrTagLength is returned when a tag sequence does not match the render string.
var ErrTagLength = errors.New("tag count does not match render length")

// Line is one line of the document.
//
// Raw content is immutable once the Line is built. Highlight state
// (tags, exit state, dirty flag) is written by the highlighter and the
// search overlay.
type Line struct {
	raw    []rune
	render []rune

	// offsets[i] is the render index where raw[i] begins; len(raw)+1 entries.
	offsets []int
	// cells[i] is the screen column where render[i] begins; len(render)+1 entries.
	cells []int

	tags   []Tag
	exit   LineState
	dirty  bool
	tagGen uint64
}

func newLine(raw []rune, tabSize int) *Line {
	l := &Line{raw: raw, dirty: true}
	l.rebuild(tabSize)
	return l
}

// rebuild recomputes the render string and resets tags to TagNormal.
func (l *Line) rebuild(tabSize int) {
	render := make([]rune, 0, len(l.raw))
	offsets := make([]int, 0, len(l.raw)+1)
	cells := make([]int, 0, len(l.raw)+1)
	col := 0

	for _, r := range l.raw {
		offsets = append(offsets, len(render))
		switch {
		case r == '\t':
			render = append(render, ' ')
			cells = append(cells, col)
			col++
			for col%tabSize != 0 {
				render = append(render, ' ')
				cells = append(cells, col)
				col++
			}
		case !unicode.IsGraphic(r):
			render = append(render, ControlPlaceholder)
			cells = append(cells, col)
			col++
		default:
			render = append(render, r)
			cells = append(cells, col)
			col += runewidth.RuneWidth(r)
		}
	}
	offsets = append(offsets, len(render))
	cells = append(cells, col)

	l.render = render
	l.offsets = offsets
	l.cells = cells
	l.tags = make([]Tag, len(render))
	l.dirty = true
}

// Len returns the number of characters in the raw content.
func (l *Line) Len() int {
	return len(l.raw)
}

// String returns the raw content.
func (l *Line) String() string {
	return string(l.raw)
}

// Runes returns the raw content. The slice must not be modified.
func (l *Line) Runes() []rune {
	return l.raw
}

// Render returns the render string. The slice must not be modified.
func (l *Line) Render() []rune {
	return l.render
}

// Tags returns the highlight tags, aligned with Render.
func (l *Line) Tags() []Tag {
	return l.tags
}

// Width returns the display width of the line in screen columns.
func (l *Line) Width() int {
	return l.cells[len(l.cells)-1]
}

// CellAt returns the screen column where render index i begins.
func (l *Line) CellAt(i int) int {
	i = clamp(i, 0, len(l.render))
	return l.cells[i]
}

// RenderIndex translates a raw character index into a render index.
func (l *Line) RenderIndex(col int) int {
	return l.offsets[clamp(col, 0, len(l.raw))]
}

// RenderColumn translates a raw character index into a screen column.
func (l *Line) RenderColumn(col int) int {
	return l.cells[l.RenderIndex(col)]
}

// CharIndex translates a screen column into the raw character index whose
// span contains it. Columns past the end map to Len.
func (l *Line) CharIndex(rx int) int {
	for i := range l.raw {
		if l.cells[l.offsets[i+1]] > rx {
			return i
		}
	}
	return len(l.raw)
}

// LineState is the highlighter state at the end of a line. The zero value
// means nothing is left open.
type LineState struct {
	// Comment is set when the line ends inside a block comment.
	Comment bool
	// Quote is the delimiter of a string that continues on the next line.
	Quote rune
}

// ExitState returns the state the line ends in.
func (l *Line) ExitState() LineState {
	return l.exit
}

// OpenComment reports whether the line ends inside a block comment.
func (l *Line) OpenComment() bool {
	return l.exit.Comment
}

// Dirty reports whether the highlight tags are stale.
func (l *Line) Dirty() bool {
	return l.dirty
}

// TagGeneration changes every time SetHighlight replaces the tags.
func (l *Line) TagGeneration() uint64 {
	return l.tagGen
}

// SetHighlight installs freshly computed tags and clears the dirty flag.
func (l *Line) SetHighlight(tags []Tag, exit LineState) error {
	if len(tags) != len(l.render) {
		return ErrTagLength
	}
	l.tags = tags
	l.exit = exit
	l.dirty = false
	l.tagGen++
	return nil
}

// Overlay sets tags in the render range [start, end) to tag and returns the
// tags it replaced.
func (l *Line) Overlay(start, end int, tag Tag) []Tag {
	start = clamp(start, 0, len(l.tags))
	end = clamp(end, start, len(l.tags))
	saved := make([]Tag, end-start)
	copy(saved, l.tags[start:end])
	for i := start; i < end; i++ {
		l.tags[i] = tag
	}
	return saved
}

// RestoreTags writes saved tags back starting at render index start.
func (l *Line) RestoreTags(start int, saved []Tag) {
	if start < 0 || start >= len(l.tags) {
		return
	}
	copy(l.tags[start:], saved)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
