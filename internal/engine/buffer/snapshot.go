package buffer

import "strings"

// Snapshot is a read-only view of a buffer's lines at a point in time.
// Lines are shared with the buffer, which never edits raw content in place.
type Snapshot struct {
	lines   []*Line
	version uint64
	tabSize int
}

// Snapshot captures the current lines and version.
func (b *Buffer) Snapshot() Snapshot {
	lines := make([]*Line, len(b.lines))
	copy(lines, b.lines)
	return Snapshot{lines: lines, version: b.version, tabSize: b.tabSize}
}

// Version returns the buffer version the snapshot was taken at.
func (s Snapshot) Version() uint64 {
	return s.version
}

// LineCount returns the number of lines.
func (s Snapshot) LineCount() int {
	return len(s.lines)
}

// LineText returns the raw content of line i.
func (s Snapshot) LineText(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i].String()
}

// Lines returns every line's raw content.
func (s Snapshot) Lines() []string {
	out := make([]string, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.String()
	}
	return out
}

// Bytes serializes the snapshot with a newline after every line.
func (s Snapshot) Bytes() []byte {
	var sb strings.Builder
	for _, l := range s.lines {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// Rollback returns the buffer to the captured content. The version never
// goes back: it moves forward when the content changed since the snapshot,
// and a buffer rolled back to its saved content is clean again.
func (b *Buffer) Rollback(s Snapshot) {
	clean := s.version == b.savedVersion
	changed := s.version != b.version
	b.restore(s)
	if changed {
		b.version++
	}
	if clean {
		b.savedVersion = b.version
	}
}

// Restore brings back the captured content as a new edit, so the version
// still moves forward.
func (b *Buffer) Restore(s Snapshot) {
	b.restore(s)
	b.version++
}

func (b *Buffer) restore(s Snapshot) {
	if len(s.lines) == 0 {
		b.lines = []*Line{newLine(nil, b.tabSize)}
		return
	}
	b.lines = make([]*Line, len(s.lines))
	copy(b.lines, s.lines)
	if s.tabSize != b.tabSize {
		for _, l := range b.lines {
			l.rebuild(b.tabSize)
		}
	}
	b.MarkAllDirty()
}
