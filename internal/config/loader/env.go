package loader

import (
	"os"
	"slices"
	"strconv"
	"strings"
)

// DefaultEnvPrefix prefixes every environment variable the editor reads.
const DefaultEnvPrefix = "QUILL_"

// EnvLoader loads configuration from environment variables.
//
// QUILL_EDITOR_TAB_SIZE maps to editor.tab_size: the first word after the
// prefix names the section and the rest, lowercased, the key. Keys under a
// map-valued setting registered with WithMaps gain one more level, so
// QUILL_THEME_COLORS_KEYWORD maps to theme.colors.keyword.
type EnvLoader struct {
	prefix   string
	mapping  map[string]string // Env var -> config path
	sections []string
	maps     []string
	environ  func() []string
}

// EnvOption configures an EnvLoader.
type EnvOption func(*EnvLoader)

// WithMapping adds explicit variable to path mappings.
func WithMapping(mapping map[string]string) EnvOption {
	return func(l *EnvLoader) {
		for env, path := range mapping {
			l.mapping[env] = path
		}
	}
}

// WithSections restricts scanning to variables naming one of sections.
// Variables for other sections are ignored.
func WithSections(sections ...string) EnvOption {
	return func(l *EnvLoader) {
		l.sections = sections
	}
}

// WithMaps registers dot paths of map-valued settings, e.g. "theme.colors".
func WithMaps(paths ...string) EnvOption {
	return func(l *EnvLoader) {
		l.maps = paths
	}
}

// WithEnviron replaces os.Environ.
func WithEnviron(environ func() []string) EnvOption {
	return func(l *EnvLoader) {
		l.environ = environ
	}
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "QUILL_").
func NewEnvLoader(prefix string, opts ...EnvOption) *EnvLoader {
	l := &EnvLoader{
		prefix:  prefix,
		mapping: make(map[string]string),
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads environment variables and returns a configuration map.
// Empty values are treated as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, ok := l.mapping[name]
		if !ok {
			path, ok = l.envToPath(name)
			if !ok {
				continue
			}
		}
		SetByPath(config, path, parseValue(value))
	}

	return config, nil
}

// envToPath converts QUILL_EDITOR_TAB_SIZE to editor.tab_size.
func (l *EnvLoader) envToPath(env string) (string, bool) {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return "", false
	}
	if len(l.sections) > 0 && !slices.Contains(l.sections, section) {
		return "", false
	}

	for _, m := range l.maps {
		msec, mkey, _ := strings.Cut(m, ".")
		if msec != section {
			continue
		}
		if rest, ok := strings.CutPrefix(key, mkey+"_"); ok && rest != "" {
			return section + "." + mkey + "." + rest, true
		}
	}
	return section + "." + key, true
}

// parseValue converts booleans and integers and leaves everything else a
// string. "1" and "0" stay integers so counts such as quit_times can be set.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}
