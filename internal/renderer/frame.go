package renderer

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/quill/internal/renderer/core"
)

// Glyph is one visible character of a run.
type Glyph struct {
	Rune      rune
	Combining []rune
	Width     int
}

// Run is a horizontal span of glyphs drawn with one style.
type Run struct {
	// X is the screen column of the first glyph.
	X      int
	Style  core.Style
	Glyphs []Glyph
}

// Width returns the number of screen columns the run covers.
func (r Run) Width() int {
	w := 0
	for _, g := range r.Glyphs {
		w += g.Width
	}
	return w
}

// Text returns the run's characters.
func (r Run) Text() string {
	var sb strings.Builder
	for _, g := range r.Glyphs {
		sb.WriteRune(g.Rune)
		for _, c := range g.Combining {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// Row is one screen row as a sequence of styled runs. Adjacent runs
// always differ in style.
type Row struct {
	Runs []Run
}

// Text returns the row's characters.
func (r Row) Text() string {
	var sb strings.Builder
	for _, run := range r.Runs {
		sb.WriteString(run.Text())
	}
	return sb.String()
}

// Frame is one full screen composed in memory.
type Frame struct {
	Width  int
	Height int
	Rows   []Row

	CursorX       int
	CursorY       int
	CursorVisible bool
}

// rowBuilder appends glyphs left to right, opening a new run only when the
// style changes.
type rowBuilder struct {
	row Row
	x   int
}

func (b *rowBuilder) put(g Glyph, st core.Style) {
	n := len(b.row.Runs)
	if n == 0 || !b.row.Runs[n-1].Style.Equals(st) {
		b.row.Runs = append(b.row.Runs, Run{X: b.x, Style: st})
		n++
	}
	b.row.Runs[n-1].Glyphs = append(b.row.Runs[n-1].Glyphs, g)
	b.x += g.Width
}

// combine attaches a zero-width rune to the last glyph.
func (b *rowBuilder) combine(r rune) {
	n := len(b.row.Runs)
	if n == 0 {
		return
	}
	run := &b.row.Runs[n-1]
	last := &run.Glyphs[len(run.Glyphs)-1]
	last.Combining = append(last.Combining, r)
}

// text writes s starting at the current column, stopping before limit.
func (b *rowBuilder) text(s string, st core.Style, limit int) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if b.x > 0 {
				b.combine(r)
			}
			continue
		}
		if b.x+w > limit {
			break
		}
		b.put(Glyph{Rune: r, Width: w}, st)
	}
}

// pad fills with spaces up to column limit.
func (b *rowBuilder) pad(limit int, st core.Style) {
	for b.x < limit {
		b.put(Glyph{Rune: ' ', Width: 1}, st)
	}
}
