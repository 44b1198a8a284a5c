package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// memFS is an in-memory file system for testing.
type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) add(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/config.toml", `
[editor]
tab_size = 8
soft_tabs = true

[theme.colors]
keyword = "#ff0000"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := GetByPath(config, "editor.tab_size"); v != int64(8) {
		t.Errorf("expected tab_size 8, got %v (%T)", v, v)
	}
	if v, _ := GetByPath(config, "editor.soft_tabs"); v != true {
		t.Errorf("expected soft_tabs true, got %v", v)
	}
	if v, _ := GetByPath(config, "theme.colors.keyword"); v != "#ff0000" {
		t.Errorf("expected keyword color, got %v", v)
	}
}

func TestYAMLLoader(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/config.yaml", `
editor:
  tab_size: 2
keymap:
  save: Ctrl+W
`)

	l := ForPath(memfs, "/config.yaml")
	if _, ok := l.(*YAMLLoader); !ok {
		t.Fatalf("expected a YAML loader, got %T", l)
	}
	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := GetByPath(config, "editor.tab_size"); v != 2 {
		t.Errorf("expected tab_size 2, got %v (%T)", v, v)
	}
	if v, _ := GetByPath(config, "keymap.save"); v != "Ctrl+W" {
		t.Errorf("expected Ctrl+W, got %v", v)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	for _, path := range []string{"/none.toml", "/none.yml"} {
		config, err := ForPath(newMemFS(), path).Load()
		if err != nil || config != nil {
			t.Errorf("%s: expected nil, nil; got %v, %v", path, config, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/bad.toml", "[editor\ntab_size = 4\n")
	memfs.add("/bad.yaml", "editor: [unclosed\n")

	for _, path := range []string{"/bad.toml", "/bad.yaml"} {
		t.Run(path, func(t *testing.T) {
			_, err := ForPath(memfs, path).Load()
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if perr.Path != path {
				t.Errorf("expected path %q, got %q", path, perr.Path)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error should name the file: %v", err)
			}
		})
	}

	_, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("x = "))
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Line != 1 {
		t.Errorf("expected a parse error on line 1, got %v", err)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"tab_size": 4, "soft_tabs": false},
		"log":    map[string]any{"level": "info"},
	}
	src := map[string]any{
		"editor": map[string]any{"tab_size": 8},
		"theme":  map[string]any{"name": "monokai"},
	}

	merged := DeepMerge(Clone(dst), src)
	checks := map[string]any{
		"editor.tab_size":  8,
		"editor.soft_tabs": false,
		"log.level":        "info",
		"theme.name":       "monokai",
	}
	for path, want := range checks {
		if got, _ := GetByPath(merged, path); got != want {
			t.Errorf("%s: expected %v, got %v", path, want, got)
		}
	}
	if v, _ := GetByPath(dst, "editor.tab_size"); v != 4 {
		t.Errorf("merging into a clone changed the original: %v", v)
	}
}
