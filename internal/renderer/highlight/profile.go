package highlight

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile is returned for a language profile that cannot be used.
var ErrInvalidProfile = errors.New("invalid language profile")

// Profile is the data table describing one language. The highlighter is a
// single algorithm driven entirely by these fields.
type Profile struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`

	// Keywords are tagged as keywords, Types as type keywords.
	Keywords []string `yaml:"keywords"`
	Types    []string `yaml:"types"`

	LineComment string `yaml:"line_comment"`
	// BlockComment holds the opening and closing delimiters, or is empty.
	BlockComment []string `yaml:"block_comment"`

	// Strings lists string delimiter characters; Chars lists delimiters
	// whose literals are tagged as characters instead.
	Strings string `yaml:"strings"`
	Chars   string `yaml:"chars"`
	// MultilineStrings lists the delimiters in Strings whose literals may
	// continue onto following lines, such as the Go raw string backtick.
	MultilineStrings string `yaml:"multiline_strings"`

	Numbers bool `yaml:"numbers"`
}

// Validate checks the profile is usable.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProfile)
	}
	if n := len(p.BlockComment); n != 0 && n != 2 {
		return fmt.Errorf("%w: %s: block_comment needs start and end", ErrInvalidProfile, p.Name)
	}
	for _, d := range p.BlockComment {
		if d == "" {
			return fmt.Errorf("%w: %s: empty block comment delimiter", ErrInvalidProfile, p.Name)
		}
	}
	for _, r := range p.MultilineStrings {
		if !strings.ContainsRune(p.Strings, r) {
			return fmt.Errorf("%w: %s: multiline delimiter %q is not a string delimiter", ErrInvalidProfile, p.Name, r)
		}
	}
	return nil
}

// Registry manages available language profiles.
type Registry struct {
	mu sync.RWMutex

	// byName maps profile names to profiles
	byName map[string]*Profile

	// byExtension maps file extensions to profiles
	byExtension map[string]*Profile
}

// NewRegistry creates an empty profile registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:      make(map[string]*Profile),
		byExtension: make(map[string]*Profile),
	}
}

// DefaultRegistry returns a registry with the built-in profiles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range BuiltinProfiles() {
		_ = r.Register(p)
	}
	return r
}

// Register adds a profile, replacing any with the same name or extension.
func (r *Registry) Register(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName[p.Name] = p
	for _, ext := range p.Extensions {
		if ext == "" {
			continue
		}
		r.byExtension[normalizeExt(ext)] = p
	}
	return nil
}

// ByName returns the profile with the given name.
func (r *Registry) ByName(name string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	return p, ok
}

// ByExtension returns the profile for a file extension.
func (r *Registry) ByExtension(ext string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ext == "" {
		return nil, false
	}
	p, ok := r.byExtension[normalizeExt(ext)]
	return p, ok
}

// ForFile infers a profile from a file path. It returns nil when no
// profile matches, which highlights nothing.
func (r *Registry) ForFile(path string) *Profile {
	p, _ := r.ByExtension(filepath.Ext(path))
	return p
}

// Names returns all registered profile names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	return ext
}

// profileFile is the YAML layout of a user profile file.
type profileFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadProfiles decodes language profiles from YAML.
func LoadProfiles(r io.Reader) ([]*Profile, error) {
	var f profileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	for _, p := range f.Profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Profiles, nil
}

// LoadProfilesFile reads profiles from a YAML file and registers them.
func (r *Registry) LoadProfilesFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	profiles, err := LoadProfiles(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	for _, p := range profiles {
		if err := r.Register(p); err != nil {
			return 0, err
		}
	}
	return len(profiles), nil
}
