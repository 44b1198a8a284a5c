package history

import (
	"errors"
	"slices"
	"time"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is configured.
const DefaultMaxEntries = 100

// Entry is one restorable state.
type Entry struct {
	Buffer    buffer.Snapshot
	Cursor    cursor.State
	Timestamp time.Time
}

// History manages undo/redo state for a buffer.
// It is owned by a single session and not safe for concurrent use.
type History struct {
	undoStack []Entry
	redoStack []Entry

	// group names the edit run the top undo entry covers.
	group string

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Record saves e as the state to return to before the next edit.
// A non-empty group equal to the previous call's group is folded into the
// existing entry, so a run of typing undoes as one step.
// Recording clears the redo stack.
func (h *History) Record(group string, e Entry) bool {
	h.redoStack = nil
	if group != "" && group == h.group && len(h.undoStack) > 0 {
		return false
	}
	h.group = group
	h.push(e)
	return true
}

// Break ends the current group so the next Record starts a new step.
func (h *History) Break() {
	h.group = ""
}

func (h *History) push(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	h.undoStack = append(h.undoStack, e)

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the most recent entry and stores current for Redo.
func (h *History) Undo(current Entry) (Entry, error) {
	if len(h.undoStack) == 0 {
		return Entry{}, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	h.group = ""
	return e, nil
}

// Redo pops the most recently undone state and stores current for Undo.
func (h *History) Redo(current Entry) (Entry, error) {
	if len(h.redoStack) == 0 {
		return Entry{}, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.push(current)
	h.group = ""
	return e, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Mark is a saved position of the undo and redo stacks.
type Mark struct {
	undo  []Entry
	redo  []Entry
	group string
}

// Mark returns a copy of the current stacks.
func (h *History) Mark() Mark {
	return Mark{undo: slices.Clone(h.undoStack), redo: slices.Clone(h.redoStack), group: h.group}
}

// ResetTo returns the stacks to a mark, discarding steps recorded since.
func (h *History) ResetTo(m Mark) {
	h.undoStack = m.undo
	h.redoStack = m.redo
	h.group = m.group
}

// Clear drops all history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.group = ""
}
