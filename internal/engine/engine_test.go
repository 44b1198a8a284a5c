package engine

import (
	"errors"
	"testing"

	"github.com/dshills/quill/internal/engine/cursor"
)

func TestNewWithContent(t *testing.T) {
	e := New(WithContent("one\ntwo\n"))
	if e.Text() != "one\ntwo" {
		t.Errorf("expected %q, got %q", "one\ntwo", e.Text())
	}
	if e.Modified() {
		t.Error("new engine should not be modified")
	}

	empty := New()
	if empty.Buffer().LineCount() != 1 || empty.Text() != "" {
		t.Errorf("expected one blank line, got %q", empty.Text())
	}
}

func TestInsertMovesCursor(t *testing.T) {
	e := New(WithLines([]string{"ac"}))
	e.MoveTo(Position{Line: 0, Col: 1})

	if err := e.InsertChar('b'); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "abc" {
		t.Errorf("expected %q, got %q", "abc", e.Text())
	}
	if got := e.Position(); got != (Position{Line: 0, Col: 2}) {
		t.Errorf("expected (0:2), got %v", got)
	}
	if !e.Modified() {
		t.Error("engine should be modified after insert")
	}
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	lines := []string{"fn main() {", "\tx := 1", "}"}
	for line := range lines {
		for col := 0; col <= len([]rune(lines[line])); col++ {
			e := New(WithLines(lines))
			want := e.Text()
			e.MoveTo(Position{Line: line, Col: col})
			if err := e.InsertChar('#'); err != nil {
				t.Fatal(err)
			}
			if err := e.DeleteBackward(); err != nil {
				t.Fatal(err)
			}
			if got := e.Text(); got != want {
				t.Errorf("(%d:%d): expected %q, got %q", line, col, want, got)
			}
		}
	}
}

func TestNewlineSplitsAndJoins(t *testing.T) {
	e := New(WithLines([]string{"hello world"}))
	e.MoveTo(Position{Line: 0, Col: 5})

	if err := e.InsertNewline(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "hello\n world" {
		t.Fatalf("unexpected split %q", e.Text())
	}
	if err := e.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "hello world" {
		t.Errorf("join should restore the line, got %q", e.Text())
	}
	if got := e.Position(); got != (Position{Line: 0, Col: 5}) {
		t.Errorf("expected (0:5), got %v", got)
	}
}

func TestAutoIndent(t *testing.T) {
	tests := []struct {
		name   string
		auto   bool
		line   string
		col    int
		want   string
		cursor Position
	}{
		{"off", false, "\t  x", 4, "\t  x\n", Position{Line: 1, Col: 0}},
		{"copies indent", true, "\t  x", 4, "\t  x\n\t  ", Position{Line: 1, Col: 3}},
		{"split inside indent", true, "    x", 2, "  \n    x", Position{Line: 1, Col: 2}},
		{"no indent", true, "abc", 1, "a\nbc", Position{Line: 1, Col: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithLines([]string{tt.line}), WithAutoIndent(tt.auto))
			e.MoveTo(Position{Line: 0, Col: tt.col})
			if err := e.InsertNewline(); err != nil {
				t.Fatal(err)
			}
			if e.Text() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, e.Text())
			}
			if e.Position() != tt.cursor {
				t.Errorf("expected cursor %v, got %v", tt.cursor, e.Position())
			}
		})
	}
}

func TestSoftTabs(t *testing.T) {
	e := New(WithLines([]string{"ab"}), WithTabSize(4), WithSoftTabs(true))
	e.MoveTo(Position{Line: 0, Col: 1})

	if err := e.InsertTab(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "a   b" {
		t.Errorf("expected spaces to the next stop, got %q", e.Text())
	}

	hard := New(WithLines([]string{"ab"}))
	if err := hard.InsertTab(); err != nil {
		t.Fatal(err)
	}
	if hard.Text() != "\tab" {
		t.Errorf("expected a tab, got %q", hard.Text())
	}
}

func TestBoundaryDeletesAreNoOps(t *testing.T) {
	e := New(WithLines([]string{"ab", "cd"}))

	if err := e.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	e.Move(cursor.DocumentEnd, 1)
	if err := e.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "ab\ncd" || e.Modified() {
		t.Errorf("boundary deletes changed the document: %q", e.Text())
	}
	if e.History().CanUndo() {
		t.Error("no-op deletes should not record undo steps")
	}
}

func TestUndoGroupsTyping(t *testing.T) {
	e := New()
	for _, r := range "abc" {
		if err := e.InsertChar(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.InsertNewline(); err != nil {
		t.Fatal(err)
	}
	if err := e.InsertChar('d'); err != nil {
		t.Fatal(err)
	}

	steps := []string{"abc\n", "abc", ""}
	for i, want := range steps {
		if err := e.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
		if e.Text() != want {
			t.Errorf("undo %d: expected %q, got %q", i, want, e.Text())
		}
	}
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}

	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "abc" {
		t.Errorf("redo: expected %q, got %q", "abc", e.Text())
	}
	if got := e.Position(); got != (Position{Line: 0, Col: 3}) {
		t.Errorf("redo should restore the cursor, got %v", got)
	}
}

func TestMoveBreaksTypingGroup(t *testing.T) {
	e := New()
	_ = e.InsertChar('a')
	e.Move(cursor.Left, 1)
	_ = e.InsertChar('b')

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "a" {
		t.Errorf("expected %q, got %q", "a", e.Text())
	}
}

func TestSelection(t *testing.T) {
	e := New(WithLines([]string{"hello", "world"}))
	e.MoveTo(Position{Line: 0, Col: 3})

	e.Select(cursor.Right)
	e.Select(cursor.Right)
	e.Select(cursor.Down)
	text, ok := e.SelectedText()
	if !ok {
		t.Fatal("expected a selection")
	}
	if text != "lo\nworld" {
		t.Errorf("expected %q, got %q", "lo\nworld", text)
	}

	cut, err := e.CutSelection()
	if err != nil {
		t.Fatal(err)
	}
	if cut != text || e.Text() != "hel" {
		t.Errorf("cut %q left %q", cut, e.Text())
	}
	if _, ok := e.Selection(); ok {
		t.Error("cut should clear the selection")
	}
	if _, err := e.CutSelection(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
}

func TestTypingReplacesSelection(t *testing.T) {
	e := New(WithLines([]string{"abcdef"}))
	e.MoveTo(Position{Line: 0, Col: 1})
	e.Select(cursor.Right)
	e.Select(cursor.Right)

	if err := e.InsertChar('X'); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "aXdef" {
		t.Errorf("expected %q, got %q", "aXdef", e.Text())
	}

	e.Select(cursor.LineEnd)
	if err := e.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "aX" {
		t.Errorf("expected %q, got %q", "aX", e.Text())
	}
}

func TestInsertTextSanitizes(t *testing.T) {
	e := New()
	if err := e.InsertText("a\r\nb\x07c"); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "a\nbc" {
		t.Errorf("expected %q, got %q", "a\nbc", e.Text())
	}
	if got := e.Position(); got != (Position{Line: 1, Col: 2}) {
		t.Errorf("expected (1:2), got %v", got)
	}
}

func TestReadOnly(t *testing.T) {
	e := New(WithLines([]string{"abc"}), WithReadOnly())

	edits := map[string]func() error{
		"insert":  func() error { return e.InsertChar('x') },
		"newline": e.InsertNewline,
		"delete":  func() error { e.MoveTo(Position{Col: 1}); return e.DeleteBackward() },
		"paste":   func() error { return e.InsertText("x") },
		"undo":    e.Undo,
	}
	for name, edit := range edits {
		if err := edit(); !errors.Is(err, ErrReadOnly) {
			t.Errorf("%s: expected ErrReadOnly, got %v", name, err)
		}
	}
	if e.Text() != "abc" || e.Modified() {
		t.Errorf("read-only engine changed: %q", e.Text())
	}
}

func TestCheckpointRollback(t *testing.T) {
	e := New(WithLines([]string{"one", "two"}))
	e.MoveTo(Position{Line: 1, Col: 2})
	cp := e.Checkpoint()

	_ = e.InsertText("xx\nyy")
	e.Select(cursor.Left)
	e.Rollback(cp)

	if e.Text() != "one\ntwo" {
		t.Errorf("expected original text, got %q", e.Text())
	}
	if e.Modified() {
		t.Error("rollback should restore the version")
	}
	if got := e.Position(); got != (Position{Line: 1, Col: 2}) {
		t.Errorf("expected cursor (1:2), got %v", got)
	}
	if _, ok := e.Selection(); ok {
		t.Error("rollback should restore the empty selection")
	}
	if e.History().CanUndo() {
		t.Error("rollback should drop undo steps recorded since the checkpoint")
	}
}

func TestClampAfterExternalDelete(t *testing.T) {
	e := New(WithLines([]string{"a", "bb", "ccc"}))
	e.MoveTo(Position{Line: 2, Col: 3})

	e.Buffer().DeleteLine(2)
	e.Clamp()
	if got := e.Position(); got != (Position{Line: 1, Col: 2}) {
		t.Errorf("expected (1:2), got %v", got)
	}
}

func TestSetTabSizeRecomputesRenderColumn(t *testing.T) {
	e := New(WithLines([]string{"\tx"}), WithTabSize(4))
	e.MoveTo(Position{Line: 0, Col: 1})
	if rx := e.Cursor().State().RX; rx != 4 {
		t.Fatalf("expected rx 4, got %d", rx)
	}
	e.SetTabSize(8)
	if rx := e.Cursor().State().RX; rx != 8 {
		t.Errorf("expected rx 8, got %d", rx)
	}
}
