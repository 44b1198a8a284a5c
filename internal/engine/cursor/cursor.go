package cursor

import (
	"github.com/dshills/quill/internal/engine/buffer"
)

// Document is the read side of the line store the cursor moves over.
type Document interface {
	LineCount() int
	LineLen(line int) int
	RenderColumn(line, col int) int
	CharIndex(line, rx int) int
}

// Direction names a cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	LineStart
	LineEnd
	DocumentStart
	DocumentEnd
	PageUp
	PageDown
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case LineStart:
		return "line-start"
	case LineEnd:
		return "line-end"
	case DocumentStart:
		return "document-start"
	case DocumentEnd:
		return "document-end"
	case PageUp:
		return "page-up"
	case PageDown:
		return "page-down"
	default:
		return "unknown"
	}
}

// IsVertical reports whether the movement keeps the remembered render column.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down || d == PageUp || d == PageDown
}

// State is a copyable view of everything the controller tracks.
type State struct {
	Line int
	Col  int
	// RX is the render column of (Line, Col).
	RX int

	RowOffset int
	ColOffset int

	// WantRX is the render column vertical movement tries to return to.
	WantRX int
}

// Position returns the logical position.
func (s State) Position() buffer.Position {
	return buffer.Position{Line: s.Line, Col: s.Col}
}

// Controller moves a cursor over a Document and manages scrolling.
type Controller struct {
	doc   Document
	st    State
	viewH int
	viewW int
}

// New creates a controller at the document start.
func New(doc Document) *Controller {
	return &Controller{doc: doc}
}

// State returns a copy of the cursor state.
func (c *Controller) State() State {
	return c.st
}

// SetState replaces the cursor state and clamps it to the document.
func (c *Controller) SetState(st State) {
	c.st = st
	c.clamp()
}

// Position returns the logical cursor position.
func (c *Controller) Position() buffer.Position {
	return c.st.Position()
}

// Viewport returns the dimensions from the last ScrollToKeepVisible.
func (c *Controller) Viewport() (height, width int) {
	return c.viewH, c.viewW
}

// MoveTo places the cursor at pos and resets the remembered column.
func (c *Controller) MoveTo(pos buffer.Position) {
	c.st.Line = pos.Line
	c.st.Col = pos.Col
	c.clamp()
	c.st.WantRX = c.st.RX
}

// Move moves the cursor amount steps in dir. Movement saturates at the
// document boundaries.
func (c *Controller) Move(dir Direction, amount int) {
	if amount < 1 {
		amount = 1
	}
	for i := 0; i < amount; i++ {
		c.step(dir)
	}
	c.st.RX = c.doc.RenderColumn(c.st.Line, c.st.Col)
	if !dir.IsVertical() {
		c.st.WantRX = c.st.RX
	}
}

func (c *Controller) step(dir Direction) {
	last := c.lastLine()

	switch dir {
	case Left:
		if c.st.Col > 0 {
			c.st.Col--
		} else if c.st.Line > 0 {
			c.st.Line--
			c.st.Col = c.doc.LineLen(c.st.Line)
		}
	case Right:
		if c.st.Col < c.doc.LineLen(c.st.Line) {
			c.st.Col++
		} else if c.st.Line < last {
			c.st.Line++
			c.st.Col = 0
		}
	case Up:
		if c.st.Line > 0 {
			c.st.Line--
			c.st.Col = c.doc.CharIndex(c.st.Line, c.st.WantRX)
		}
	case Down:
		if c.st.Line < last {
			c.st.Line++
			c.st.Col = c.doc.CharIndex(c.st.Line, c.st.WantRX)
		}
	case LineStart:
		c.st.Col = 0
	case LineEnd:
		c.st.Col = c.doc.LineLen(c.st.Line)
	case DocumentStart:
		c.st.Line, c.st.Col = 0, 0
	case DocumentEnd:
		c.st.Line = last
		c.st.Col = c.doc.LineLen(last)
	case PageUp, PageDown:
		delta := max(c.viewH-1, 1)
		if dir == PageUp {
			delta = -delta
		}
		c.st.RowOffset = clamp(c.st.RowOffset+delta, 0, last)
		c.st.Line = clamp(c.st.Line+delta, 0, last)
		c.st.Col = c.doc.CharIndex(c.st.Line, c.st.WantRX)
	}
}

// ClampTo rebinds the controller to doc and pulls the cursor back inside it.
func (c *Controller) ClampTo(doc Document) {
	c.doc = doc
	c.clamp()
}

func (c *Controller) clamp() {
	c.st.Line = clamp(c.st.Line, 0, c.lastLine())
	c.st.Col = clamp(c.st.Col, 0, c.doc.LineLen(c.st.Line))
	c.st.RX = c.doc.RenderColumn(c.st.Line, c.st.Col)
	if c.st.RowOffset < 0 {
		c.st.RowOffset = 0
	}
	if c.st.ColOffset < 0 {
		c.st.ColOffset = 0
	}
}

// Valid reports whether the cursor references an existing line and a
// column within it.
func (c *Controller) Valid() bool {
	if c.st.Line < 0 || c.st.Line > c.lastLine() {
		return false
	}
	return c.st.Col >= 0 && c.st.Col <= c.doc.LineLen(c.st.Line)
}

// ScrollToKeepVisible adjusts the offsets so the cursor lies inside a
// height x width viewport. Offsets do not change when it already does.
func (c *Controller) ScrollToKeepVisible(height, width int) {
	c.viewH, c.viewW = height, width
	c.st.RX = c.doc.RenderColumn(c.st.Line, c.st.Col)

	if height > 0 {
		if c.st.Line < c.st.RowOffset {
			c.st.RowOffset = c.st.Line
		}
		if c.st.Line >= c.st.RowOffset+height {
			c.st.RowOffset = c.st.Line - height + 1
		}
	}
	if width > 0 {
		if c.st.RX < c.st.ColOffset {
			c.st.ColOffset = c.st.RX
		}
		if c.st.RX >= c.st.ColOffset+width {
			c.st.ColOffset = c.st.RX - width + 1
		}
	}
}

func (c *Controller) lastLine() int {
	return max(c.doc.LineCount()-1, 0)
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
