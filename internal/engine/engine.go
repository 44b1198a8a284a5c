package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/cursor"
	"github.com/dshills/quill/internal/engine/history"
	"github.com/dshills/quill/internal/engine/search"
)

// Re-export commonly used types for convenience.
type (
	// Position is a (line, character) position in the document.
	Position = buffer.Position

	// Selection is an anchored range of text.
	Selection = cursor.Selection

	// Direction names a cursor movement.
	Direction = cursor.Direction
)

// State is everything an action can change, captured by Checkpoint.
type State struct {
	Buffer    buffer.Snapshot
	Cursor    cursor.State
	Selection cursor.Selection
	Selecting bool
	Search    search.State
	History   history.Mark
}

// Engine is the editing facade over one document.
type Engine struct {
	buf    *buffer.Buffer
	cur    *cursor.Controller
	hist   *history.History
	search *search.Engine

	sel       cursor.Selection
	selecting bool

	// Configuration
	tabSize    int
	softTabs   bool
	autoIndent bool
	maxUndo    int
	searchOpts search.Options
	readOnly   bool

	// Initialization
	initLines   []string
	initContent string
	hasContent  bool
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		tabSize:    DefaultTabSize,
		maxUndo:    DefaultMaxUndoEntries,
		searchOpts: search.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(e)
	}

	bufOpts := []buffer.Option{buffer.WithTabSize(e.tabSize)}
	if e.hasContent {
		e.buf = buffer.NewBufferFromString(e.initContent, bufOpts...)
	} else {
		e.buf = buffer.NewBuffer(append(bufOpts, buffer.WithLines(e.initLines))...)
	}
	e.initLines, e.initContent = nil, ""

	e.cur = cursor.New(e.buf)
	e.hist = history.NewHistory(e.maxUndo)
	e.search = search.New(e.buf, e.cur, e.searchOpts)
	return e
}

// Buffer returns the line store.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// Cursor returns the cursor controller.
func (e *Engine) Cursor() *cursor.Controller {
	return e.cur
}

// Search returns the search engine.
func (e *Engine) Search() *search.Engine {
	return e.search
}

// History returns the undo history.
func (e *Engine) History() *history.History {
	return e.hist
}

// Text returns the document content, lines joined by newlines.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// Position returns the cursor position.
func (e *Engine) Position() Position {
	return e.cur.Position()
}

// ReadOnly reports whether edits are refused.
func (e *Engine) ReadOnly() bool {
	return e.readOnly
}

// SetReadOnly switches read-only mode.
func (e *Engine) SetReadOnly(ro bool) {
	e.readOnly = ro
}

// TabSize returns the tab stop width.
func (e *Engine) TabSize() int {
	return e.tabSize
}

// SetTabSize changes the tab stop width and re-renders every line.
func (e *Engine) SetTabSize(size int) {
	if size < 1 || size == e.tabSize {
		return
	}
	e.tabSize = size
	e.buf.SetTabSize(size)
	e.cur.ClampTo(e.buf)
}

// SetSoftTabs switches soft tabs.
func (e *Engine) SetSoftTabs(on bool) {
	e.softTabs = on
}

// SetAutoIndent switches auto-indent.
func (e *Engine) SetAutoIndent(on bool) {
	e.autoIndent = on
}

// SetSearchOptions replaces the search matching options.
func (e *Engine) SetSearchOptions(opts search.Options) {
	e.searchOpts = opts
	e.search.SetOptions(opts)
}

// Modified reports whether the document differs from the last save.
func (e *Engine) Modified() bool {
	return e.buf.Dirty()
}

// Snapshot returns the read-only view handed to the save collaborator.
func (e *Engine) Snapshot() buffer.Snapshot {
	return e.buf.Snapshot()
}

// MarkSaved records that the snapshot at version reached storage.
func (e *Engine) MarkSaved(version uint64) {
	e.buf.MarkSaved(version)
}

// Checkpoint captures the current state.
func (e *Engine) Checkpoint() State {
	return State{
		Buffer:    e.buf.Snapshot(),
		Cursor:    e.cur.State(),
		Selection: e.sel,
		Selecting: e.selecting,
		Search:    e.search.State(),
		History:   e.hist.Mark(),
	}
}

// Rollback returns to a checkpoint exactly.
func (e *Engine) Rollback(s State) {
	e.buf.Rollback(s.Buffer)
	e.cur.ClampTo(e.buf)
	e.cur.SetState(s.Cursor)
	e.sel, e.selecting = s.Selection, s.Selecting
	e.search.SetState(s.Search)
	e.hist.ResetTo(s.History)
}

// Clamp pulls the cursor and selection back inside the document.
func (e *Engine) Clamp() {
	e.cur.ClampTo(e.buf)
	e.sel = cursor.NewSelection(e.buf.ClampPosition(e.sel.Anchor), e.buf.ClampPosition(e.sel.Head))
}

// ScrollToKeepVisible adjusts the viewport offsets for a text area.
func (e *Engine) ScrollToKeepVisible(height, width int) {
	e.cur.ScrollToKeepVisible(height, width)
}

// Move moves the cursor and drops any selection.
func (e *Engine) Move(dir Direction, amount int) {
	e.ClearSelection()
	e.cur.Move(dir, amount)
	e.hist.Break()
}

// MoveTo places the cursor and drops any selection.
func (e *Engine) MoveTo(pos Position) {
	e.ClearSelection()
	e.cur.MoveTo(pos)
	e.hist.Break()
}

// Select moves the cursor one step in dir, extending the selection
// anchored where the first Select started.
func (e *Engine) Select(dir Direction) {
	if !e.selecting {
		e.sel = cursor.NewCursorSelection(e.cur.Position())
		e.selecting = true
	}
	e.cur.Move(dir, 1)
	e.sel = e.sel.Extend(e.cur.Position())
	e.hist.Break()
}

// Selection returns the active selection, if it covers any text.
func (e *Engine) Selection() (Selection, bool) {
	if !e.selecting || e.sel.IsEmpty() {
		return Selection{}, false
	}
	return e.sel, true
}

// ClearSelection drops the selection.
func (e *Engine) ClearSelection() {
	e.selecting = false
	e.sel = cursor.Selection{}
}

// SelectedText returns the selected text.
func (e *Engine) SelectedText() (string, bool) {
	sel, ok := e.Selection()
	if !ok {
		return "", false
	}
	start, end := sel.Range()
	return e.buf.TextRange(start, end), true
}

// CutSelection removes the selected text and returns it.
func (e *Engine) CutSelection() (string, error) {
	text, ok := e.SelectedText()
	if !ok {
		return "", ErrNoSelection
	}
	if err := e.record(""); err != nil {
		return "", err
	}
	e.deleteSelection()
	return text, nil
}

// InsertChar inserts r at the cursor, replacing any selection. A run of
// insertions on one line undoes as a single step.
func (e *Engine) InsertChar(r rune) error {
	if r == '\n' {
		return e.InsertNewline()
	}
	group := ""
	if _, ok := e.Selection(); !ok {
		group = fmt.Sprintf("insert:%d", e.cur.Position().Line)
	}
	if err := e.record(group); err != nil {
		return err
	}
	pos := e.deleteSelection()
	e.cur.MoveTo(e.buf.InsertChar(pos.Line, pos.Col, r))
	return nil
}

// InsertTab inserts a tab, or spaces up to the next tab stop with soft
// tabs enabled.
func (e *Engine) InsertTab() error {
	if !e.softTabs {
		return e.InsertChar('\t')
	}
	if err := e.record(fmt.Sprintf("insert:%d", e.cur.Position().Line)); err != nil {
		return err
	}
	pos := e.deleteSelection()
	rx := e.buf.RenderColumn(pos.Line, pos.Col)
	n := e.tabSize - rx%e.tabSize
	e.cur.MoveTo(e.buf.InsertText(pos, strings.Repeat(" ", n)))
	return nil
}

// InsertNewline splits the line at the cursor. With auto-indent the new
// line starts with the leading whitespace of the line it was split from.
func (e *Engine) InsertNewline() error {
	if err := e.record(""); err != nil {
		return err
	}
	pos := e.deleteSelection()

	var indent []rune
	if e.autoIndent {
		if l := e.buf.Line(pos.Line); l != nil {
			raw := l.Runes()
			for i := 0; i < pos.Col && i < len(raw) && (raw[i] == ' ' || raw[i] == '\t'); i++ {
				indent = append(indent, raw[i])
			}
		}
	}

	next := e.buf.SplitLine(pos.Line, pos.Col)
	if len(indent) > 0 {
		next = e.buf.InsertText(next, string(indent))
	}
	e.cur.MoveTo(next)
	return nil
}

// DeleteBackward removes the selection, or the character before the
// cursor, joining lines at column 0. At the document start it does nothing.
func (e *Engine) DeleteBackward() error {
	if _, ok := e.Selection(); ok {
		return e.deleteSelectionEdit()
	}
	e.ClearSelection()
	pos := e.cur.Position()
	if pos.Line == 0 && pos.Col == 0 {
		return nil
	}
	if err := e.record(fmt.Sprintf("delete:%d", pos.Line)); err != nil {
		return err
	}
	e.cur.MoveTo(e.buf.DeleteChar(pos.Line, pos.Col))
	return nil
}

// DeleteForward removes the selection, or the character under the cursor,
// joining the next line at a line end. At the document end it does nothing.
func (e *Engine) DeleteForward() error {
	if _, ok := e.Selection(); ok {
		return e.deleteSelectionEdit()
	}
	e.ClearSelection()
	pos := e.cur.Position()
	last := e.buf.LineCount() - 1
	if pos.Line >= last && pos.Col >= e.buf.LineLen(last) {
		return nil
	}
	if err := e.record(""); err != nil {
		return err
	}
	e.cur.MoveTo(e.buf.DeleteForward(pos.Line, pos.Col))
	return nil
}

// DeleteLine removes the cursor line.
func (e *Engine) DeleteLine() error {
	e.ClearSelection()
	if e.buf.LineCount() == 1 && e.buf.LineLen(0) == 0 {
		return nil
	}
	if err := e.record(""); err != nil {
		return err
	}
	e.cur.MoveTo(e.buf.DeleteLine(e.cur.Position().Line))
	return nil
}

// InsertText inserts text at the cursor, replacing any selection.
func (e *Engine) InsertText(text string) error {
	if text == "" {
		return nil
	}
	if err := e.record(""); err != nil {
		return err
	}
	pos := e.deleteSelection()
	e.cur.MoveTo(e.buf.InsertText(pos, sanitize(text)))
	return nil
}

// Undo returns to the state before the last edit step.
func (e *Engine) Undo() error {
	if e.readOnly {
		return ErrReadOnly
	}
	prev, err := e.hist.Undo(e.entry())
	if err != nil {
		return err
	}
	e.restore(prev)
	return nil
}

// Redo re-applies the last undone step.
func (e *Engine) Redo() error {
	if e.readOnly {
		return ErrReadOnly
	}
	next, err := e.hist.Redo(e.entry())
	if err != nil {
		return err
	}
	e.restore(next)
	return nil
}

func (e *Engine) entry() history.Entry {
	return history.Entry{Buffer: e.buf.Snapshot(), Cursor: e.cur.State()}
}

func (e *Engine) restore(h history.Entry) {
	e.ClearSelection()
	e.buf.Restore(h.Buffer)
	e.cur.ClampTo(e.buf)
	e.cur.SetState(h.Cursor)
}

// record saves the undo step for an edit about to happen.
func (e *Engine) record(group string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	e.hist.Record(group, e.entry())
	return nil
}

func (e *Engine) deleteSelectionEdit() error {
	if err := e.record(""); err != nil {
		return err
	}
	e.deleteSelection()
	return nil
}

// deleteSelection removes any selected text and returns the cursor position.
func (e *Engine) deleteSelection() Position {
	sel, ok := e.Selection()
	e.ClearSelection()
	if !ok {
		return e.cur.Position()
	}
	start, end := sel.Range()
	pos := e.buf.DeleteRange(start, end)
	e.cur.MoveTo(pos)
	return pos
}

// sanitize drops carriage returns and other control characters except
// newline and tab from pasted text.
func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, text)
}
