package highlight

import (
	"testing"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/core"
)

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"", "Default Dark", true},
		{"default", "Default Dark", true},
		{"Monokai", "Monokai", true},
		{"solarized", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := ThemeByName(tt.name)
			if !tt.ok {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if th.Name != tt.want {
				t.Errorf("expected %q, got %q", tt.want, th.Name)
			}
		})
	}
}

func TestThemeCoversEveryTag(t *testing.T) {
	th := DefaultTheme()
	for _, tag := range buffer.Tags() {
		if _, ok := th.TagStyles[tag]; !ok {
			t.Errorf("default theme has no style for %v", tag)
		}
	}
}

func TestStyleForFallsBack(t *testing.T) {
	th := MonokaiTheme()
	got := th.StyleFor(buffer.TagNormal)
	if !got.Foreground.Equals(th.Foreground) {
		t.Errorf("expected theme foreground, got %v", got.Foreground)
	}
}

func TestOverride(t *testing.T) {
	th := DefaultTheme()
	before := th.StyleFor(buffer.TagComment)

	if err := th.Override(map[string]string{"keyword": "#ff0000", "number": "00ff00"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := th.StyleFor(buffer.TagKeyword).Foreground; !got.Equals(core.ColorFromRGB(255, 0, 0)) {
		t.Errorf("keyword: expected red, got %v", got)
	}
	if got := th.StyleFor(buffer.TagNumber).Foreground; !got.Equals(core.ColorFromRGB(0, 255, 0)) {
		t.Errorf("number: expected green, got %v", got)
	}
	if !th.StyleFor(buffer.TagComment).Equals(before) {
		t.Error("comment style should be unchanged")
	}

	if err := th.Override(map[string]string{"comment": "#123456"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !th.StyleFor(buffer.TagComment).Attributes.Has(core.AttrItalic) {
		t.Error("override should keep attributes")
	}
}

func TestOverrideRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		colors map[string]string
	}{
		{"unknown tag", map[string]string{"keywrd": "#ffffff"}},
		{"bad color", map[string]string{"string": "#zzzzzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultTheme()
			want := th.StyleFor(buffer.TagString)
			if err := th.Override(tt.colors); err == nil {
				t.Error("expected error")
			}
			if !th.StyleFor(buffer.TagString).Equals(want) {
				t.Error("failed override should leave the theme unchanged")
			}
		})
	}
}
