package renderer

import (
	"testing"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/renderer/core"
	"github.com/dshills/quill/internal/renderer/highlight"
)

func newTestRenderer(width, height int, opts Options) (*Renderer, *backend.NullBackend) {
	b := backend.NewNullBackend(width, height)
	_ = b.Init()
	return New(b, highlight.DefaultTheme(), opts), b
}

func newDoc(lines ...string) *buffer.Buffer {
	return buffer.NewBuffer(buffer.WithTabSize(4), buffer.WithLines(lines))
}

func TestDrawShowsOnceAndPlacesCursor(t *testing.T) {
	r, b := newTestRenderer(10, 4, DefaultOptions())
	doc := newDoc("hello", "world")

	r.Draw(doc, View{CursorLine: 1, CursorRX: 3})

	if b.Shows() != 1 {
		t.Errorf("expected 1 show, got %d", b.Shows())
	}
	x, y, visible := b.CursorPosition()
	if x != 3 || y != 1 || !visible {
		t.Errorf("expected cursor (3,1), got (%d,%d) visible=%v", x, y, visible)
	}
	if r.FrameCount() != 1 {
		t.Errorf("expected frame count 1, got %d", r.FrameCount())
	}
}

func TestRowsPastDocumentAreBlank(t *testing.T) {
	r, b := newTestRenderer(6, 4, DefaultOptions())
	r.Draw(newDoc("ab"), View{})

	want := []string{"ab    ", "      ", "      ", "      "}
	for y, w := range want {
		if got := b.RowText(y); got != w {
			t.Errorf("row %d: expected %q, got %q", y, w, got)
		}
	}
}

func TestHorizontalSlicing(t *testing.T) {
	tests := []struct {
		name string
		line string
		off  int
		want string
	}{
		{"plain", "abcdefghij", 3, "defg"},
		{"tab", "\tx", 0, "    "},
		{"tab offset", "\txyz", 3, " xyz"},
		{"past end", "abc", 5, "    "},
		{"wide cut right", "abc世", 0, "abc "},
		{"wide whole", "a世b", 0, "a世b"},
		{"wide cut left", "世ab", 1, " ab "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRenderer(4, 1, DefaultOptions())
			f := r.Build(newDoc(tt.line), View{ColOffset: tt.off})
			if got := f.Rows[0].Text(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCombiningRunesAttach(t *testing.T) {
	r, b := newTestRenderer(4, 1, DefaultOptions())
	r.Draw(newDoc("e\u0301x"), View{})

	if got := b.RowText(0); got != "e\u0301x  " {
		t.Errorf("expected %q, got %q", "e\u0301x  ", got)
	}
	c := b.Cell(0, 0)
	if len(c.Combining) != 1 || c.Combining[0] != '\u0301' {
		t.Errorf("expected combining accent on first cell, got %+v", c)
	}
}

func TestRunsChangeOnlyAtTagBoundaries(t *testing.T) {
	r, _ := newTestRenderer(12, 1, DefaultOptions())
	doc := newDoc("int x = 1;")
	highlight.New(&highlight.Profile{Name: "t", Types: []string{"int"}, Numbers: true}).Update(doc)

	f := r.Build(doc, View{})
	runs := f.Rows[0].Runs
	want := []string{"int", " x = ", "1", ";  "}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d: %+v", len(want), len(runs), runs)
	}
	x := 0
	for i, run := range runs {
		if run.Text() != want[i] {
			t.Errorf("run %d: expected %q, got %q", i, want[i], run.Text())
		}
		if run.X != x {
			t.Errorf("run %d: expected x %d, got %d", i, x, run.X)
		}
		x += run.Width()
		if i > 0 && run.Style.Equals(runs[i-1].Style) {
			t.Errorf("runs %d and %d share a style", i-1, i)
		}
	}
}

func TestGutter(t *testing.T) {
	r, b := newTestRenderer(10, 3, Options{ShowLineNumbers: true})
	doc := newDoc("abc", "de")

	r.Draw(doc, View{CursorLine: 1, CursorRX: 1})

	want := []string{"  1 abc   ", "  2 de    ", "          "}
	for y, w := range want {
		if got := b.RowText(y); got != w {
			t.Errorf("row %d: expected %q, got %q", y, w, got)
		}
	}
	if x, _, _ := b.CursorPosition(); x != 5 {
		t.Errorf("cursor should be shifted by the gutter, got x=%d", x)
	}

	r.SetOptions(Options{ShowLineNumbers: true, GutterWidth: 2})
	if _, w, g := r.TextArea(doc.LineCount(), 0); g != 2 || w != 8 {
		t.Errorf("fixed gutter: expected width 8 gutter 2, got %d %d", w, g)
	}
}

func TestFormatLineNumber(t *testing.T) {
	tests := []struct {
		num   int
		width int
		want  string
	}{
		{1, 3, "  1"},
		{123, 3, "123"},
		{1234, 3, "234"},
		{5, 0, ""},
	}
	for _, tt := range tests {
		if got := formatLineNumber(tt.num, tt.width); got != tt.want {
			t.Errorf("formatLineNumber(%d, %d): expected %q, got %q", tt.num, tt.width, tt.want, got)
		}
	}
}

func TestScrolledViewAndHiddenCursor(t *testing.T) {
	r, b := newTestRenderer(5, 2, DefaultOptions())
	doc := newDoc("zero", "one", "two", "three")

	r.Draw(doc, View{RowOffset: 2, CursorLine: 0})

	if got := b.RowText(0); got != "two  " {
		t.Errorf("expected %q, got %q", "two  ", got)
	}
	if got := b.RowText(1); got != "three" {
		t.Errorf("expected %q, got %q", "three", got)
	}
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor above the viewport should be hidden")
	}
}

func TestSelectionUsesSelectionStyle(t *testing.T) {
	r, _ := newTestRenderer(8, 2, DefaultOptions())
	doc := newDoc("abcdef", "ghij")

	f := r.Build(doc, View{
		HasSelection:   true,
		SelectionStart: buffer.Position{Line: 0, Col: 4},
		SelectionEnd:   buffer.Position{Line: 1, Col: 2},
	})

	sel := r.Theme().StyleFor(buffer.TagSelection)
	first := f.Rows[0].Runs
	if len(first) != 3 || first[1].Text() != "ef" || !first[1].Style.Equals(sel) {
		t.Errorf("line 0: unexpected runs %+v", first)
	}
	second := f.Rows[1].Runs
	if second[0].Text() != "gh" || !second[0].Style.Equals(sel) {
		t.Errorf("line 1: unexpected runs %+v", second)
	}
}

func TestBars(t *testing.T) {
	r, b := newTestRenderer(8, 3, DefaultOptions())
	doc := newDoc("a", "b", "c")

	f := r.Draw(doc, View{Bars: []Bar{{Text: "status bar text", Inverse: true}, {Text: "msg"}}})

	if got := b.RowText(0); got != "a       " {
		t.Errorf("expected one text row, got %q", got)
	}
	if got := b.RowText(1); got != "status b" {
		t.Errorf("expected truncated status, got %q", got)
	}
	if got := b.RowText(2); got != "msg     " {
		t.Errorf("expected message row, got %q", got)
	}
	if !f.Rows[1].Runs[0].Style.Attributes.Has(core.AttrReverse) {
		t.Error("status bar should be drawn inverse")
	}
	if h, _, _ := r.TextArea(doc.LineCount(), 2); h != 1 {
		t.Errorf("expected text height 1, got %d", h)
	}
}
