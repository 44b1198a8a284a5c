package highlight

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestRegistryForFile(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"lib.RS", "rust"},
		{"/tmp/x/header.h", "c"},
		{"script.py", "python"},
		{"Makefile", ""},
		{"notes.unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p := r.ForFile(tt.path)
			got := ""
			if p != nil {
				got = p.Name
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRegistryNames(t *testing.T) {
	names := DefaultRegistry().Names()
	sort.Strings(names)
	if len(names) != len(BuiltinProfiles()) {
		t.Errorf("expected %d names, got %d", len(BuiltinProfiles()), len(names))
	}
	if i := sort.SearchStrings(names, "go"); i >= len(names) || names[i] != "go" {
		t.Error("expected go profile to be registered")
	}
}

func TestBuiltinProfilesValid(t *testing.T) {
	for _, p := range BuiltinProfiles() {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", p.Name, err)
		}
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Profile
		ok   bool
	}{
		{"valid", Profile{Name: "x", BlockComment: []string{"(*", "*)"}}, true},
		{"no block", Profile{Name: "x"}, true},
		{"missing name", Profile{}, false},
		{"one delimiter", Profile{Name: "x", BlockComment: []string{"/*"}}, false},
		{"empty delimiter", Profile{Name: "x", BlockComment: []string{"/*", ""}}, false},
		{"multiline string", Profile{Name: "x", Strings: "\"`", MultilineStrings: "`"}, true},
		{"multiline not a string", Profile{Name: "x", Strings: "\"", MultilineStrings: "`"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}
}

const pascalYAML = `
profiles:
  - name: pascal
    extensions: [pas, .PP]
    keywords: [begin, end, program]
    types: [integer]
    line_comment: "//"
    block_comment: ["(*", "*)"]
    strings: "'"
    numbers: true
`

func TestLoadProfiles(t *testing.T) {
	profiles, err := LoadProfiles(strings.NewReader(pascalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	p := profiles[0]
	if p.Name != "pascal" || len(p.Keywords) != 3 || p.BlockComment[1] != "*)" {
		t.Errorf("unexpected profile %+v", p)
	}

	empty, err := LoadProfiles(strings.NewReader(""))
	if err != nil || empty != nil {
		t.Errorf("empty input: expected nil, nil; got %v, %v", empty, err)
	}
}

func TestLoadProfilesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "profiles:\n  - name: x\n    colour: red\n"},
		{"invalid profile", "profiles:\n  - name: x\n    block_comment: [\"/*\"]\n"},
		{"not yaml", "profiles: [:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadProfiles(strings.NewReader(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadProfilesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "languages.yaml")
	if err := os.WriteFile(path, []byte(pascalYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	r := DefaultRegistry()
	n, err := r.LoadProfilesFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 profile loaded, got %d", n)
	}
	for _, file := range []string{"a.pas", "b.pp"} {
		if p := r.ForFile(file); p == nil || p.Name != "pascal" {
			t.Errorf("%s: expected pascal profile", file)
		}
	}

	if _, err := r.LoadProfilesFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
