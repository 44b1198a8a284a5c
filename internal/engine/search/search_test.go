package search

import (
	"testing"

	"github.com/dshills/quill/internal/engine/buffer"
)

type recordingMover struct {
	pos   buffer.Position
	moves int
}

func (m *recordingMover) MoveTo(pos buffer.Position) {
	m.pos = pos
	m.moves++
}

func newEngine(opts Options, lines ...string) (*Engine, *buffer.Buffer, *recordingMover) {
	b := buffer.NewBuffer(buffer.WithTabSize(4), buffer.WithLines(lines))
	m := &recordingMover{}
	return New(b, m, opts), b, m
}

func TestSingleMatchIsStable(t *testing.T) {
	e, _, mv := newEngine(DefaultOptions(), "alpha", "beta needle", "gamma")

	m, ok := e.Find("needle", buffer.Position{}, Forward)
	if !ok {
		t.Fatal("expected a match")
	}
	want := Match{Line: 1, Col: 5, Len: 6}
	if m != want {
		t.Fatalf("expected %+v, got %+v", want, m)
	}

	for i := 0; i < 3; i++ {
		for _, dir := range []Direction{Forward, Backward} {
			again, ok := e.Find("needle", m.Position(), dir)
			if !ok || again != want {
				t.Errorf("repeat %d %v: expected %+v, got %+v (ok=%v)", i, dir, want, again, ok)
			}
		}
	}
	if mv.pos != want.Position() {
		t.Errorf("cursor at %v, expected match start", mv.pos)
	}
}

func TestForwardCycle(t *testing.T) {
	e, _, _ := newEngine(DefaultOptions(), "x foo", "foo foo", "bar")

	p1 := Match{Line: 0, Col: 2, Len: 3}
	p2 := Match{Line: 1, Col: 0, Len: 3}
	p3 := Match{Line: 1, Col: 4, Len: 3}

	m, ok := e.Find("foo", buffer.Position{}, Forward)
	if !ok || m != p1 {
		t.Fatalf("first: expected %+v, got %+v", p1, m)
	}
	for i, want := range []Match{p2, p3, p1, p2, p3, p1} {
		m, ok = e.Find("foo", m.Position(), Forward)
		if !ok || m != want {
			t.Errorf("step %d: expected %+v, got %+v", i, want, m)
		}
	}
}

func TestBackwardCycle(t *testing.T) {
	e, _, _ := newEngine(DefaultOptions(), "x foo", "foo foo", "bar")

	m := Match{Line: 0, Col: 2, Len: 3}
	for i, want := range []Match{{1, 4, 3}, {1, 0, 3}, {0, 2, 3}, {1, 4, 3}} {
		var ok bool
		m, ok = e.Find("foo", m.Position(), Backward)
		if !ok || m != want {
			t.Errorf("step %d: expected %+v, got %+v", i, want, m)
		}
	}
}

func TestNextRepeatsLastQuery(t *testing.T) {
	e, _, _ := newEngine(DefaultOptions(), "ab ab", "ab")

	if _, ok := e.FindFrom("ab", buffer.Position{}, Forward); !ok {
		t.Fatal("expected a match")
	}
	m, ok := e.Next(Forward, buffer.Position{})
	if !ok || m.Position() != (buffer.Position{Line: 0, Col: 3}) {
		t.Errorf("Next: got %+v", m)
	}
	m, _ = e.Next(Backward, buffer.Position{})
	if m.Position() != (buffer.Position{}) {
		t.Errorf("Next backward: got %+v", m)
	}
}

func TestFindFromIsInclusive(t *testing.T) {
	e, _, _ := newEngine(DefaultOptions(), "abc abc")

	m, ok := e.FindFrom("abc", buffer.Position{}, Forward)
	if !ok || m.Col != 0 {
		t.Errorf("expected match at 0, got %+v", m)
	}
	m, _ = e.Find("abc", buffer.Position{}, Forward)
	if m.Col != 4 {
		t.Errorf("strict Find should skip the start, got %+v", m)
	}
}

func TestNoWrap(t *testing.T) {
	e, _, _ := newEngine(Options{WrapAround: false}, "foo", "x", "foo")

	m, ok := e.Find("foo", buffer.Position{Line: 0, Col: 0}, Forward)
	if !ok || m.Line != 2 {
		t.Fatalf("expected line 2, got %+v", m)
	}
	if _, ok := e.Find("foo", m.Position(), Forward); ok {
		t.Error("search should stop at document end without wrap")
	}
	if _, ok := e.Find("foo", buffer.Position{}, Backward); ok {
		t.Error("search should stop at document start without wrap")
	}
}

func TestCaseSensitivity(t *testing.T) {
	e, _, _ := newEngine(DefaultOptions(), "Hello World")
	if _, ok := e.FindFrom("WORLD", buffer.Position{}, Forward); !ok {
		t.Error("case-insensitive search should match")
	}

	e.SetOptions(Options{CaseSensitive: true, WrapAround: true})
	if _, ok := e.FindFrom("WORLD", buffer.Position{}, Forward); ok {
		t.Error("case-sensitive search should not match")
	}
	if _, ok := e.FindFrom("World", buffer.Position{}, Forward); !ok {
		t.Error("case-sensitive search should match exact case")
	}
}

func TestNotFoundLeavesCursor(t *testing.T) {
	e, _, mv := newEngine(DefaultOptions(), "abc")

	if _, ok := e.Find("zzz", buffer.Position{}, Forward); ok {
		t.Fatal("expected no match")
	}
	if _, ok := e.Find("", buffer.Position{}, Forward); ok {
		t.Fatal("empty query should not match")
	}
	if mv.moves != 0 {
		t.Errorf("cursor moved %d times", mv.moves)
	}
}

func TestOverlayAndRestore(t *testing.T) {
	e, b, _ := newEngine(DefaultOptions(), "\tfoo bar", "bar")
	for i := 0; i < b.LineCount(); i++ {
		l := b.Line(i)
		tags := make([]buffer.Tag, len(l.Render()))
		for j := range tags {
			tags[j] = buffer.TagKeyword
		}
		if err := l.SetHighlight(tags, buffer.LineState{}); err != nil {
			t.Fatal(err)
		}
	}

	if _, ok := e.FindFrom("foo", buffer.Position{}, Forward); !ok {
		t.Fatal("expected match")
	}
	tags := b.Line(0).Tags()
	for i, tag := range tags {
		want := buffer.TagKeyword
		if i >= 4 && i < 7 {
			want = buffer.TagMatch
		}
		if tag != want {
			t.Errorf("tag %d: expected %v, got %v", i, want, tag)
		}
	}

	if _, ok := e.Find("bar", buffer.Position{Line: 0, Col: 7}, Forward); !ok {
		t.Fatal("expected match on line 1")
	}
	for i, tag := range b.Line(0).Tags() {
		if tag != buffer.TagKeyword {
			t.Errorf("line 0 tag %d not restored: %v", i, tag)
		}
	}
	if b.Line(1).Tags()[0] != buffer.TagMatch {
		t.Error("line 1 should carry the match overlay")
	}

	e.Cancel()
	for i, tag := range b.Line(1).Tags() {
		if tag != buffer.TagKeyword {
			t.Errorf("line 1 tag %d not restored after cancel: %v", i, tag)
		}
	}
	if e.State().Query != "bar" {
		t.Errorf("query should persist after cancel, got %q", e.State().Query)
	}
}

func TestRefreshReappliesOverlay(t *testing.T) {
	e, b, _ := newEngine(DefaultOptions(), "one two")
	l := b.Line(0)

	if _, ok := e.FindFrom("two", buffer.Position{}, Forward); !ok {
		t.Fatal("expected match")
	}
	if err := l.SetHighlight(make([]buffer.Tag, len(l.Render())), buffer.LineState{}); err != nil {
		t.Fatal(err)
	}
	if l.Tags()[4] != buffer.TagNormal {
		t.Fatal("re-highlight should have cleared the overlay")
	}

	e.Refresh()
	if l.Tags()[4] != buffer.TagMatch {
		t.Error("Refresh should redraw the overlay")
	}
}
