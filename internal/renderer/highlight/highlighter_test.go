package highlight

import (
	"testing"

	"github.com/dshills/quill/internal/engine/buffer"
)

func cProfile() *Profile {
	return &Profile{
		Name:         "test-c",
		Keywords:     []string{"if", "return", "fn"},
		Types:        []string{"int"},
		LineComment:  "//",
		BlockComment: []string{"/*", "*/"},
		Strings:      "\"",
		Chars:        "'",
		Numbers:      true,
	}
}

func tagsOf(t *testing.T, h *Highlighter, line string) []buffer.Tag {
	t.Helper()
	tags, _ := h.TagLine([]rune(line), buffer.LineState{})
	if len(tags) != len([]rune(line)) {
		t.Fatalf("expected %d tags, got %d", len([]rune(line)), len(tags))
	}
	return tags
}

func expectRange(t *testing.T, tags []buffer.Tag, start, end int, want buffer.Tag) {
	t.Helper()
	for i := start; i < end; i++ {
		if tags[i] != want {
			t.Errorf("col %d: expected %v, got %v", i, want, tags[i])
		}
	}
}

func TestNoProfileTagsNormal(t *testing.T) {
	h := New(nil)
	tags, exit := h.TagLine([]rune("int x = 1; /* y"), buffer.LineState{})

	expectRange(t, tags, 0, len(tags), buffer.TagNormal)
	if exit != (buffer.LineState{}) {
		t.Error("no profile should never open a comment")
	}
	if h.Name() != "" {
		t.Errorf("expected empty name, got %q", h.Name())
	}
}

func TestLineComment(t *testing.T) {
	b := buffer.NewBuffer(buffer.WithLines([]string{"fn main() {", "    // TODO", "}"}))
	h := New(&Profile{Name: "slashes", LineComment: "//"})
	h.Update(b)

	tags := b.Line(1).Tags()
	expectRange(t, tags, 0, 4, buffer.TagNormal)
	expectRange(t, tags, 4, len(tags), buffer.TagComment)
}

func TestKeywordsTypesNumbers(t *testing.T) {
	h := New(cProfile())
	line := "int x1 = 42 + 3.5; return y;"
	tags := tagsOf(t, h, line)

	expectRange(t, tags, 0, 3, buffer.TagType)
	expectRange(t, tags, 4, 6, buffer.TagNormal)
	expectRange(t, tags, 9, 11, buffer.TagNumber)
	expectRange(t, tags, 14, 17, buffer.TagNumber)
	expectRange(t, tags, 19, 25, buffer.TagKeyword)
	expectRange(t, tags, 26, 27, buffer.TagNormal)
}

func TestKeywordNeedsBoundaries(t *testing.T) {
	h := New(cProfile())

	tags := tagsOf(t, h, "iffy notif if")
	expectRange(t, tags, 0, 9, buffer.TagNormal)
	expectRange(t, tags, 11, 13, buffer.TagKeyword)
}

func TestStringsAndChars(t *testing.T) {
	h := New(cProfile())
	line := `"a\"b" 'c' x`
	tags := tagsOf(t, h, line)

	expectRange(t, tags, 0, 6, buffer.TagString)
	expectRange(t, tags, 6, 7, buffer.TagNormal)
	expectRange(t, tags, 7, 10, buffer.TagChar)
	expectRange(t, tags, 11, 12, buffer.TagNormal)
}

func TestCommentInsideStringIgnored(t *testing.T) {
	h := New(cProfile())
	tags := tagsOf(t, h, `"// not" x`)

	expectRange(t, tags, 0, 8, buffer.TagString)
	expectRange(t, tags, 9, 10, buffer.TagNormal)
}

func TestBlockCommentWithinLine(t *testing.T) {
	h := New(cProfile())
	tags, exit := h.TagLine([]rune("a /* b */ 1"), buffer.LineState{})

	expectRange(t, tags, 0, 2, buffer.TagNormal)
	expectRange(t, tags, 2, 9, buffer.TagBlockComment)
	expectRange(t, tags, 10, 11, buffer.TagNumber)
	if exit.Comment {
		t.Error("closed comment should not stay open")
	}

	_, exit = h.TagLine([]rune("x /* open"), buffer.LineState{})
	if !exit.Comment {
		t.Error("unterminated comment should stay open")
	}
	tags, exit = h.TagLine([]rune("still */ int"), buffer.LineState{Comment: true})
	expectRange(t, tags, 0, 8, buffer.TagBlockComment)
	expectRange(t, tags, 9, 12, buffer.TagType)
	if exit.Comment {
		t.Error("comment closed on this line")
	}
}

func TestBlockCommentCascade(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "int v = 1;"
	}
	b := buffer.NewBuffer(buffer.WithLines(lines))
	h := New(cProfile())

	if n := h.Update(b); n != 10 {
		t.Fatalf("initial update: expected 10 lines, got %d", n)
	}
	if n := h.Update(b); n != 0 {
		t.Fatalf("clean update: expected 0 lines, got %d", n)
	}

	// Open a block comment at the start of the third line.
	b.InsertChar(2, 0, '/')
	b.InsertChar(2, 1, '*')
	if n := h.Update(b); n != 8 {
		t.Errorf("expected lines 3..10 re-tagged (8), got %d", n)
	}
	for i := 2; i < 10; i++ {
		l := b.Line(i)
		expectRange(t, l.Tags(), 0, len(l.Tags()), buffer.TagBlockComment)
		if !l.OpenComment() {
			t.Errorf("line %d should end inside the comment", i)
		}
	}
	expectRange(t, b.Line(1).Tags(), 0, 3, buffer.TagType)

	// Close it on the sixth line; only lines up to the next stable one change.
	b.InsertText(buffer.Position{Line: 5, Col: 0}, "*/")
	if n := h.Update(b); n != 5 {
		t.Errorf("expected lines 6..10 re-tagged (5), got %d", n)
	}
	expectRange(t, b.Line(5).Tags(), 0, 2, buffer.TagBlockComment)
	expectRange(t, b.Line(5).Tags(), 2, 5, buffer.TagType)
	for i := 6; i < 10; i++ {
		expectRange(t, b.Line(i).Tags(), 0, 3, buffer.TagType)
	}
}

func TestEditWithoutStateChangeStopsCascade(t *testing.T) {
	b := buffer.NewBuffer(buffer.WithLines([]string{"/* a", "b", "c */", "int d;"}))
	h := New(cProfile())
	h.Update(b)

	b.InsertChar(1, 0, 'x')
	if n := h.Update(b); n != 1 {
		t.Errorf("expected only the edited line re-tagged, got %d", n)
	}
	expectRange(t, b.Line(1).Tags(), 0, 2, buffer.TagBlockComment)
}

func TestSetProfileRetagsEverything(t *testing.T) {
	b := buffer.NewBuffer(buffer.WithLines([]string{"int a;", "int b;"}))
	h := New(nil)
	h.Update(b)
	expectRange(t, b.Line(0).Tags(), 0, 3, buffer.TagNormal)

	h.SetProfile(cProfile(), b)
	if n := h.Update(b); n != 2 {
		t.Errorf("expected 2 lines re-tagged, got %d", n)
	}
	expectRange(t, b.Line(0).Tags(), 0, 3, buffer.TagType)
	if h.Name() != "test-c" {
		t.Errorf("expected profile name test-c, got %q", h.Name())
	}
}

func TestTabsRenderAsNormal(t *testing.T) {
	b := buffer.NewBuffer(buffer.WithTabSize(4), buffer.WithLines([]string{"\treturn 1"}))
	h := New(cProfile())
	h.Update(b)

	tags := b.Line(0).Tags()
	if len(tags) != len(b.Line(0).Render()) {
		t.Fatalf("tags not aligned with render string")
	}
	expectRange(t, tags, 0, 4, buffer.TagNormal)
	expectRange(t, tags, 4, 10, buffer.TagKeyword)
	expectRange(t, tags, 11, 12, buffer.TagNumber)
}

func TestBuiltinGoProfile(t *testing.T) {
	r := DefaultRegistry()
	p := r.ForFile("main.go")
	if p == nil {
		t.Fatal("expected a profile for .go")
	}
	h := New(p)
	tags := tagsOf(t, h, "func f() string { return `x` }")

	expectRange(t, tags, 0, 4, buffer.TagKeyword)
	expectRange(t, tags, 9, 15, buffer.TagType)
	expectRange(t, tags, 18, 24, buffer.TagKeyword)
	expectRange(t, tags, 25, 28, buffer.TagString)
}

func TestRawStringSpansLines(t *testing.T) {
	h := New(DefaultRegistry().ForFile("main.go"))

	_, exit := h.TagLine([]rune("x := `a"), buffer.LineState{})
	if exit.Quote != '`' {
		t.Fatalf("expected the raw string to stay open, got %+v", exit)
	}

	tags, exit := h.TagLine([]rune("if b` + 1"), exit)
	expectRange(t, tags, 0, 5, buffer.TagString)
	expectRange(t, tags, 8, 9, buffer.TagNumber)
	if exit != (buffer.LineState{}) {
		t.Errorf("expected the string closed, got %+v", exit)
	}
}

func TestSingleLineStringDoesNotCarry(t *testing.T) {
	h := New(DefaultRegistry().ForFile("main.go"))

	_, exit := h.TagLine([]rune(`s := "open`), buffer.LineState{})
	if exit != (buffer.LineState{}) {
		t.Errorf("interpreted strings end with the line, got %+v", exit)
	}
	// A stale quote the profile does not allow across lines is ignored.
	tags, _ := h.TagLine([]rune("if x"), buffer.LineState{Quote: '"'})
	expectRange(t, tags, 0, 2, buffer.TagKeyword)
}

func TestRawStringCascade(t *testing.T) {
	b := buffer.NewBuffer(buffer.WithLines([]string{"a := 1", "if b {", "return c", "}"}))
	h := New(DefaultRegistry().ForFile("main.go"))
	h.Update(b)
	expectRange(t, b.Line(1).Tags(), 0, 2, buffer.TagKeyword)

	b.InsertText(buffer.Position{Line: 0, Col: 6}, " + `")
	if n := h.Update(b); n != 4 {
		t.Errorf("expected every line re-tagged, got %d", n)
	}
	for i := 1; i < 4; i++ {
		l := b.Line(i)
		expectRange(t, l.Tags(), 0, len(l.Tags()), buffer.TagString)
		if l.ExitState().Quote != '`' {
			t.Errorf("line %d should end inside the raw string", i)
		}
	}

	// Closing it on the third line stops the string there.
	b.InsertChar(2, 0, '`')
	if n := h.Update(b); n != 2 {
		t.Errorf("expected lines 3..4 re-tagged (2), got %d", n)
	}
	expectRange(t, b.Line(2).Tags(), 0, 1, buffer.TagString)
	expectRange(t, b.Line(2).Tags(), 1, 7, buffer.TagKeyword)
	expectRange(t, b.Line(3).Tags(), 0, 1, buffer.TagNormal)
}
