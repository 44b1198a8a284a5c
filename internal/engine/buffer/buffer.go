package buffer

import (
	"strings"
)

// Buffer is the ordered sequence of lines making up a document.
//
// A Buffer is owned by a single editing session and is not safe for
// concurrent use.
type Buffer struct {
	lines   []*Line
	tabSize int
	initial []string

	version      uint64
	savedVersion uint64
}

// NewBuffer creates a buffer. Without WithLines it holds one blank line.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{tabSize: DefaultTabSize}
	for _, opt := range opts {
		opt(b)
	}

	if len(b.initial) == 0 {
		b.initial = []string{""}
	}
	b.lines = make([]*Line, len(b.initial))
	for i, s := range b.initial {
		b.lines[i] = newLine([]rune(s), b.tabSize)
	}
	b.initial = nil
	return b
}

// NewBufferFromString splits text on newlines and builds a buffer.
// A trailing newline does not produce an extra empty line.
func NewBufferFromString(text string, opts ...Option) *Buffer {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return NewBuffer(append(opts, WithLines(lines))...)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the line at index i, or nil when out of range.
func (b *Buffer) Line(i int) *Line {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

// LineText returns the raw content of line i, or "" when out of range.
func (b *Buffer) LineText(i int) string {
	if l := b.Line(i); l != nil {
		return l.String()
	}
	return ""
}

// LineLen returns the character count of line i. The position one past the
// last line is a valid, empty line.
func (b *Buffer) LineLen(i int) int {
	if l := b.Line(i); l != nil {
		return l.Len()
	}
	return 0
}

// RenderColumn translates (line, col) into a screen column.
func (b *Buffer) RenderColumn(line, col int) int {
	if l := b.Line(line); l != nil {
		return l.RenderColumn(col)
	}
	return 0
}

// CharIndex translates a screen column on line into a character index.
func (b *Buffer) CharIndex(line, rx int) int {
	if l := b.Line(line); l != nil {
		return l.CharIndex(rx)
	}
	return 0
}

// Text returns the full document joined with newlines.
func (b *Buffer) Text() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

// TabSize returns the tab stop width.
func (b *Buffer) TabSize() int {
	return b.tabSize
}

// SetTabSize changes the tab stop width and re-renders every line.
func (b *Buffer) SetTabSize(size int) {
	if size <= 0 || size == b.tabSize {
		return
	}
	b.tabSize = size
	for _, l := range b.lines {
		l.rebuild(size)
	}
}

// Version returns the mutation counter.
func (b *Buffer) Version() uint64 {
	return b.version
}

// Dirty reports whether the buffer differs from the last saved version.
func (b *Buffer) Dirty() bool {
	return b.version != b.savedVersion
}

// MarkSaved records that the content at version was written to storage.
func (b *Buffer) MarkSaved(version uint64) {
	b.savedVersion = version
}

// MarkDirty flags line i for re-highlighting.
func (b *Buffer) MarkDirty(i int) {
	if l := b.Line(i); l != nil {
		l.dirty = true
	}
}

// MarkAllDirty flags every line for re-highlighting.
func (b *Buffer) MarkAllDirty() {
	for _, l := range b.lines {
		l.dirty = true
	}
}

// InsertChar inserts ch before column col of line and returns the position
// after it. A newline splits the line. Inserting on the line just past the
// end appends a new line.
func (b *Buffer) InsertChar(line, col int, ch rune) Position {
	if ch == '\n' {
		return b.SplitLine(line, col)
	}
	line = clamp(line, 0, len(b.lines))
	if line == len(b.lines) {
		b.insertLine(line, nil)
	}
	old := b.lines[line].raw
	col = clamp(col, 0, len(old))

	raw := make([]rune, 0, len(old)+1)
	raw = append(raw, old[:col]...)
	raw = append(raw, ch)
	raw = append(raw, old[col:]...)
	b.replaceLine(line, raw)
	return Position{Line: line, Col: col + 1}
}

// DeleteChar removes the character before column col. At column 0 the line
// is joined onto the previous one. At the document start it is a no-op.
func (b *Buffer) DeleteChar(line, col int) Position {
	line = clamp(line, 0, len(b.lines))
	if line == len(b.lines) {
		if line == 0 {
			return Position{}
		}
		return Position{Line: line - 1, Col: b.LineLen(line - 1)}
	}
	old := b.lines[line].raw
	col = clamp(col, 0, len(old))

	if col == 0 {
		if line == 0 {
			return Position{}
		}
		return b.JoinLine(line - 1)
	}

	raw := make([]rune, 0, len(old)-1)
	raw = append(raw, old[:col-1]...)
	raw = append(raw, old[col:]...)
	b.replaceLine(line, raw)
	return Position{Line: line, Col: col - 1}
}

// DeleteForward removes the character at column col. At the end of a line
// the next line is joined on. At the document end it is a no-op.
func (b *Buffer) DeleteForward(line, col int) Position {
	line = clamp(line, 0, len(b.lines))
	if line == len(b.lines) {
		return Position{Line: line}
	}
	col = clamp(col, 0, b.lines[line].Len())
	if col == b.lines[line].Len() {
		b.JoinLine(line)
		return Position{Line: line, Col: col}
	}
	return b.DeleteChar(line, col+1)
}

// SplitLine breaks line at col and returns the start of the new second line.
func (b *Buffer) SplitLine(line, col int) Position {
	line = clamp(line, 0, len(b.lines))
	if line == len(b.lines) {
		b.insertLine(line, nil)
		return Position{Line: line, Col: 0}
	}
	old := b.lines[line].raw
	col = clamp(col, 0, len(old))

	head := append([]rune(nil), old[:col]...)
	tail := append([]rune(nil), old[col:]...)
	b.replaceLine(line, head)
	b.insertLine(line+1, tail)
	return Position{Line: line + 1, Col: 0}
}

// JoinLine appends line+1 onto line and returns the join point.
// Joining the last line is a no-op.
func (b *Buffer) JoinLine(line int) Position {
	if line < 0 {
		line = 0
	}
	if line >= len(b.lines)-1 {
		line = clamp(line, 0, len(b.lines)-1)
		return Position{Line: line, Col: b.lines[line].Len()}
	}
	head := b.lines[line].raw
	next := b.lines[line+1].raw

	raw := make([]rune, 0, len(head)+len(next))
	raw = append(raw, head...)
	raw = append(raw, next...)
	b.replaceLine(line, raw)
	b.removeLine(line + 1)
	return Position{Line: line, Col: len(head)}
}

// InsertLine inserts content as a new line at index.
func (b *Buffer) InsertLine(index int, content string) Position {
	index = clamp(index, 0, len(b.lines))
	b.insertLine(index, []rune(content))
	return Position{Line: index, Col: 0}
}

// DeleteLine removes the line at index. The document always keeps at least
// one line; deleting the only line empties it.
func (b *Buffer) DeleteLine(index int) Position {
	if index < 0 || index >= len(b.lines) {
		index = clamp(index, 0, len(b.lines)-1)
		return Position{Line: index, Col: 0}
	}
	if len(b.lines) == 1 {
		if b.lines[0].Len() > 0 {
			b.replaceLine(0, nil)
		}
		return Position{}
	}
	b.removeLine(index)
	return Position{Line: min(index, len(b.lines)-1), Col: 0}
}

// TextRange returns the text between two positions, newline separated.
func (b *Buffer) TextRange(start, end Position) string {
	start, end = b.clampPos(start), b.clampPos(end)
	start, end = OrderPositions(start, end)
	if start.Line == end.Line {
		if start.Line >= len(b.lines) {
			return ""
		}
		return string(b.lines[start.Line].raw[start.Col:end.Col])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Line].raw[start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[i].String())
	}
	sb.WriteByte('\n')
	if end.Line < len(b.lines) {
		sb.WriteString(string(b.lines[end.Line].raw[:end.Col]))
	}
	return sb.String()
}

// DeleteRange removes the text between two positions and returns the start.
func (b *Buffer) DeleteRange(start, end Position) Position {
	start, end = b.clampPos(start), b.clampPos(end)
	start, end = OrderPositions(start, end)
	if start == end || start.Line >= len(b.lines) {
		return start
	}
	if end.Line >= len(b.lines) {
		end = Position{Line: len(b.lines) - 1, Col: b.lines[len(b.lines)-1].Len()}
	}

	head := b.lines[start.Line].raw[:start.Col]
	tail := b.lines[end.Line].raw[end.Col:]
	raw := make([]rune, 0, len(head)+len(tail))
	raw = append(raw, head...)
	raw = append(raw, tail...)

	for i := end.Line; i > start.Line; i-- {
		b.removeLine(i)
	}
	b.replaceLine(start.Line, raw)
	return start
}

// InsertText inserts text at pos, splitting on newlines, and returns the
// position after the inserted text.
func (b *Buffer) InsertText(pos Position, text string) Position {
	pos = b.clampPos(pos)
	if text == "" {
		return pos
	}
	if pos.Line == len(b.lines) {
		b.insertLine(pos.Line, nil)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")

	old := b.lines[pos.Line].raw
	tail := append([]rune(nil), old[pos.Col:]...)

	first := make([]rune, 0, pos.Col+len(parts[0]))
	first = append(first, old[:pos.Col]...)
	first = append(first, []rune(parts[0])...)

	if len(parts) == 1 {
		b.replaceLine(pos.Line, append(first, tail...))
		return Position{Line: pos.Line, Col: pos.Col + len([]rune(parts[0]))}
	}

	b.replaceLine(pos.Line, first)
	for i := 1; i < len(parts)-1; i++ {
		b.insertLine(pos.Line+i, []rune(parts[i]))
	}
	lastLine := pos.Line + len(parts) - 1
	last := []rune(parts[len(parts)-1])
	col := len(last)
	b.insertLine(lastLine, append(last, tail...))
	return Position{Line: lastLine, Col: col}
}

// ClampPosition returns pos limited to valid document coordinates.
func (b *Buffer) ClampPosition(pos Position) Position {
	return b.clampPos(pos)
}

func (b *Buffer) clampPos(pos Position) Position {
	pos.Line = clamp(pos.Line, 0, len(b.lines))
	pos.Col = clamp(pos.Col, 0, b.LineLen(pos.Line))
	return pos
}

// replaceLine swaps in a new Line for index i, carrying over the previous
// exit state so the highlighter can tell whether it changed.
func (b *Buffer) replaceLine(i int, raw []rune) {
	l := newLine(raw, b.tabSize)
	l.exit = b.lines[i].exit
	b.lines[i] = l
	b.version++
}

func (b *Buffer) insertLine(i int, raw []rune) {
	l := newLine(raw, b.tabSize)
	if i > 0 {
		l.exit = b.lines[i-1].exit
	}
	b.lines = append(b.lines, nil)
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = l
	b.MarkDirty(i + 1)
	b.version++
}

func (b *Buffer) removeLine(i int) {
	copy(b.lines[i:], b.lines[i+1:])
	b.lines[len(b.lines)-1] = nil
	b.lines = b.lines[:len(b.lines)-1]
	b.MarkDirty(i)
	b.version++
}
