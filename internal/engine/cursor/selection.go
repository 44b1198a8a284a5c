package cursor

import (
	"fmt"

	"github.com/dshills/quill/internal/engine/buffer"
)

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the current cursor position.
// When Anchor == Head, this represents a cursor with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor buffer.Position
	Head   buffer.Position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head buffer.Position) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor (no extent).
func NewCursorSelection(pos buffer.Position) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Range returns the selection bounds ordered so start is not after end.
func (s Selection) Range() (start, end buffer.Position) {
	return buffer.OrderPositions(s.Anchor, s.Head)
}

// Extend returns a selection with the same anchor and a new head.
func (s Selection) Extend(head buffer.Position) Selection {
	return Selection{Anchor: s.Anchor, Head: head}
}

// Collapse returns an empty selection at the head.
func (s Selection) Collapse() Selection {
	return NewCursorSelection(s.Head)
}

// Contains reports whether pos lies in [start, end).
func (s Selection) Contains(pos buffer.Position) bool {
	start, end := s.Range()
	return !pos.Before(start) && pos.Before(end)
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%v", s.Head)
	}
	return fmt.Sprintf("Selection%v->%v", s.Anchor, s.Head)
}
