// Package buffer provides the line store that backs an editing session.
//
// A Buffer is an ordered sequence of lines. Each Line holds its raw content
// as Unicode scalar values plus two derived caches:
//
//   - the render string: tabs expanded to the next tab stop and
//     non-graphic characters replaced by ControlPlaceholder
//   - the highlight tags: one Tag per rendered rune
//
// The two caches always have equal length. Raw content is never mutated in
// place; every edit replaces the affected Line with a fresh one. That makes
// Snapshot a cheap copy of the line slice, which the session uses both for
// atomic rollback of a failed action and for undo.
//
// Columns passed to edit operations are character indices into raw content.
// Out-of-range arguments are clamped rather than rejected:
//
//	buf := buffer.NewBuffer(buffer.WithTabSize(4))
//	pos := buf.InsertChar(0, 0, 'x')  // (0:1)
//	pos = buf.SplitLine(pos.Line, pos.Col)
//
// Every mutation bumps a monotonic version. Dirty reports whether the
// version differs from the one last recorded by MarkSaved.
package buffer
