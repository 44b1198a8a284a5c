// Package search implements directional, wrap-around substring search over
// a line store, with a temporary highlight overlay on the current match.
package search

import (
	"unicode"

	"github.com/dshills/quill/internal/engine/buffer"
)

// Direction selects which way a search scans.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Document is the line store being searched.
type Document interface {
	LineCount() int
	Line(i int) *buffer.Line
}

// Mover receives the cursor jump to a match start.
type Mover interface {
	MoveTo(pos buffer.Position)
}

// Options controls matching.
type Options struct {
	CaseSensitive bool
	WrapAround    bool
}

// DefaultOptions returns case-insensitive matching with wrap-around.
func DefaultOptions() Options {
	return Options{WrapAround: true}
}

// Match is one occurrence of the query, Len measured in characters.
type Match struct {
	Line int
	Col  int
	Len  int
}

// Position returns the match start.
func (m Match) Position() buffer.Position {
	return buffer.Position{Line: m.Line, Col: m.Col}
}

// overlay remembers the tags a match highlight replaced.
type overlay struct {
	line  *buffer.Line
	gen   uint64
	start int
	saved []buffer.Tag
}

// State is the persistent search state of a session.
type State struct {
	Query     string
	Direction Direction
	Last      Match
	HasMatch  bool

	ov *overlay
}

// Engine runs searches against a Document.
type Engine struct {
	doc   Document
	mover Mover
	opts  Options
	st    State
}

// New creates a search engine.
func New(doc Document, mover Mover, opts Options) *Engine {
	return &Engine{doc: doc, mover: mover, opts: opts}
}

// SetOptions replaces the matching options.
func (e *Engine) SetOptions(opts Options) {
	e.opts = opts
}

// State returns a copy of the search state.
func (e *Engine) State() State {
	return e.st
}

// SetState replaces the search state, as when rolling back an action.
func (e *Engine) SetState(st State) {
	e.st = st
}

// Find searches for query starting just past from. Repeating Find from the
// returned match yields the next distinct occurrence, or the same one if
// it is the only occurrence in the document. An empty query or a full
// circuit without a match returns false and leaves the cursor alone.
func (e *Engine) Find(query string, from buffer.Position, dir Direction) (Match, bool) {
	return e.run(query, from, dir, false)
}

// FindFrom is Find but also accepts a match starting exactly at from.
// Incremental search uses it so the query typed so far can match under
// the cursor.
func (e *Engine) FindFrom(query string, from buffer.Position, dir Direction) (Match, bool) {
	return e.run(query, from, dir, true)
}

// Next repeats the last query in dir from the last match. Without a
// previous match it searches from from inclusively.
func (e *Engine) Next(dir Direction, from buffer.Position) (Match, bool) {
	if e.st.HasMatch {
		return e.run(e.st.Query, e.st.Last.Position(), dir, false)
	}
	return e.run(e.st.Query, from, dir, true)
}

// Cancel removes the match highlight. The query is kept for repeats.
func (e *Engine) Cancel() {
	e.restore()
	e.st.HasMatch = false
}

// Refresh re-applies the match highlight when the matched line has been
// re-highlighted or replaced since the overlay was drawn.
func (e *Engine) Refresh() {
	if !e.st.HasMatch {
		return
	}
	l := e.doc.Line(e.st.Last.Line)
	if ov := e.st.ov; ov != nil && ov.line == l && l.TagGeneration() == ov.gen {
		return
	}
	e.st.ov = nil
	if l == nil || e.st.Last.Col+e.st.Last.Len > l.Len() {
		e.st.HasMatch = false
		return
	}
	e.apply(e.st.Last)
}

func (e *Engine) run(query string, from buffer.Position, dir Direction, inclusive bool) (Match, bool) {
	e.restore()
	e.st.Query = query
	e.st.Direction = dir
	e.st.HasMatch = false
	if query == "" || e.doc.LineCount() == 0 {
		return Match{}, false
	}

	m, ok := e.scan([]rune(query), from, dir, inclusive)
	if !ok {
		return Match{}, false
	}

	e.st.Last = m
	e.st.HasMatch = true
	e.apply(m)
	if e.mover != nil {
		e.mover.MoveTo(m.Position())
	}
	return m, true
}

// scan walks the document once in dir, starting on from.Line.
func (e *Engine) scan(q []rune, from buffer.Position, dir Direction, inclusive bool) (Match, bool) {
	n := e.doc.LineCount()
	if from.Line < 0 {
		from.Line = 0
	}
	if from.Line >= n {
		from.Line = n - 1
	}
	if !e.opts.CaseSensitive {
		q = fold(q)
	}

	pick := func(line int, accept func(col int) bool) (Match, bool) {
		cols := e.matches(line, q)
		if dir == Backward {
			for i := len(cols) - 1; i >= 0; i-- {
				if accept(cols[i]) {
					return Match{Line: line, Col: cols[i], Len: len(q)}, true
				}
			}
			return Match{}, false
		}
		for _, c := range cols {
			if accept(c) {
				return Match{Line: line, Col: c, Len: len(q)}, true
			}
		}
		return Match{}, false
	}
	all := func(int) bool { return true }

	// Rest of the starting line.
	first := func(c int) bool {
		switch {
		case dir == Forward && inclusive:
			return c >= from.Col
		case dir == Forward:
			return c > from.Col
		case inclusive:
			return c <= from.Col
		default:
			return c < from.Col
		}
	}
	if m, ok := pick(from.Line, first); ok {
		return m, true
	}

	step := 1
	if dir == Backward {
		step = -1
	}
	line := from.Line
	for k := 1; k < n; k++ {
		line += step
		if line < 0 || line >= n {
			if !e.opts.WrapAround {
				return Match{}, false
			}
			line = (line + n) % n
		}
		if m, ok := pick(line, all); ok {
			return m, true
		}
	}

	if !e.opts.WrapAround {
		return Match{}, false
	}

	// Back around to the part of the starting line not yet scanned.
	return pick(from.Line, func(c int) bool { return !first(c) })
}

// matches returns every start column of q in line, overlapping included.
func (e *Engine) matches(line int, q []rune) []int {
	l := e.doc.Line(line)
	if l == nil || len(q) == 0 || l.Len() < len(q) {
		return nil
	}
	text := l.Runes()
	if !e.opts.CaseSensitive {
		text = fold(text)
	}

	var cols []int
	for i := 0; i+len(q) <= len(text); i++ {
		if equalRunes(text[i:i+len(q)], q) {
			cols = append(cols, i)
		}
	}
	return cols
}

func (e *Engine) apply(m Match) {
	l := e.doc.Line(m.Line)
	if l == nil {
		return
	}
	start := l.RenderIndex(m.Col)
	end := l.RenderIndex(m.Col + m.Len)
	e.st.ov = &overlay{
		line:  l,
		gen:   l.TagGeneration(),
		start: start,
		saved: l.Overlay(start, end, buffer.TagMatch),
	}
}

// restore puts back the tags under the current overlay. A line that has
// since been re-highlighted already carries fresh tags and is left alone.
func (e *Engine) restore() {
	ov := e.st.ov
	e.st.ov = nil
	if ov == nil || ov.line.TagGeneration() != ov.gen {
		return
	}
	ov.line.RestoreTags(ov.start, ov.saved)
}

func fold(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
