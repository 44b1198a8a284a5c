package app

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/dshills/quill/internal/engine/buffer"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"\n", nil},
		{"a", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"a\n\n", []string{"a", ""}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("%q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, exists, err := LoadFile(path)
	if err != nil || !exists {
		t.Fatalf("expected the file to load, got %v %v", exists, err)
	}
	want := []string{"package main", "", "func main() {}"}
	if !slices.Equal(lines, want) {
		t.Errorf("expected %q, got %q", want, lines)
	}

	lines, exists, err = LoadFile(filepath.Join(dir, "new.txt"))
	if err != nil || exists || lines != nil {
		t.Errorf("missing file should be a new document, got %q %v %v", lines, exists, err)
	}

	_, _, err = LoadFile(dir)
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "load" {
		t.Errorf("expected a load OperationError, got %v", err)
	}
}

func TestFileStoreSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("old\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	b := buffer.NewBufferFromString("one\ntwo")
	n, err := NewFileStore(nil).Save(path, b.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Errorf("expected 8 bytes, got %d", n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("expected %q, got %q", "one\ntwo\n", data)
	}
	if runtime.GOOS != "windows" {
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0o600 {
			t.Errorf("expected mode 0600 kept, got %v", info.Mode().Perm())
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestFileStoreSaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.txt")
	_, err := NewFileStore(nil).Save(path, buffer.NewBuffer().Snapshot())

	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected an OperationError, got %v", err)
	}
	if opErr.Op != "save" || opErr.Target != path {
		t.Errorf("unexpected error fields %+v", opErr)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the cause to be kept, got %v", err)
	}
}

func TestOperationErrorMessage(t *testing.T) {
	tests := []struct {
		err  *OperationError
		want string
	}{
		{NewOperationError("save", "a.txt", errors.New("disk full")), "save a.txt: disk full"},
		{NewOperationError("clipboard", "", errors.New("no tool")), "clipboard: no tool"},
		{NewOperationError("load", "b", nil), "load b"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
