package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/quill/internal/config/loader"
	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer"
	"github.com/dshills/quill/internal/renderer/core"
	"github.com/dshills/quill/internal/renderer/highlight"
)

// Sections lists the recognized top-level tables.
var Sections = []string{"editor", "theme", "keymap", "languages", "log"}

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Config is the resolved configuration.
type Config struct {
	Editor    EditorConfig      `toml:"editor"`
	Theme     ThemeConfig       `toml:"theme"`
	Keymap    map[string]string `toml:"keymap"`
	Languages LanguagesConfig   `toml:"languages"`
	Log       LogConfig         `toml:"log"`

	// path is the file the config was loaded from, empty when none was read.
	path string
}

// Default returns the built-in configuration.
func Default() *Config {
	s := editor.DefaultSettings()
	return &Config{
		Editor: EditorConfig{
			TabSize:             s.TabSize,
			SoftTabs:            s.SoftTabs,
			AutoIndent:          s.AutoIndent,
			QuitTimes:           s.QuitTimes,
			SearchCaseSensitive: s.SearchCaseSensitive,
			SearchWrapAround:    s.SearchWrapAround,
			UndoLevels:          s.UndoLevels,
		},
		Theme:  ThemeConfig{Name: "default", Colors: map[string]string{}},
		Keymap: map[string]string{},
		Log:    LogConfig{Level: "info"},
	}
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// DefaultPath returns <user config dir>/quill/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quill", "config.toml"), nil
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs        loader.FileSystem
	environ   func() []string
	overrides map[string]any
}

// WithFS reads the config file through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnviron replaces os.Environ as the environment source.
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// WithOverrides applies values above every other source. Keys are dotted
// paths such as "log.level"; command-line flags use this.
func WithOverrides(values map[string]any) Option {
	return func(o *options) {
		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}
		for path, v := range values {
			loader.SetByPath(o.overrides, path, v)
		}
	}
}

// Load resolves the configuration from defaults, the file at path, the
// environment and overrides, then validates it. An empty path skips the
// file; a missing file is not an error.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS(), environ: os.Environ}
	for _, opt := range opts {
		opt(&o)
	}

	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	readPath := ""
	if path != "" {
		file, err := loader.ForPath(o.fs, path).Load()
		if err != nil {
			return nil, err
		}
		if file != nil {
			readPath = path
			merged = loader.DeepMerge(merged, file)
		}
	}

	env, err := loader.NewEnvLoader(loader.DefaultEnvPrefix,
		loader.WithSections(Sections...),
		loader.WithMaps("theme.colors"),
		loader.WithEnviron(o.environ),
	).Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, env)
	merged = loader.DeepMerge(merged, o.overrides)

	cfg, err := decode(merged)
	if err != nil {
		if readPath != "" {
			return nil, fmt.Errorf("config %s: %w", readPath, err)
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.path = readPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func toMap(c *Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// decode round-trips the merged map through TOML so every source is held
// to the same typing rules. Unknown keys are errors.
func decode(m map[string]any) (*Config, error) {
	dropNil(m)
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, err
	}
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown settings: %s", strings.TrimSpace(strict.String()))
		}
		return nil, err
	}
	if cfg.Keymap == nil {
		cfg.Keymap = map[string]string{}
	}
	if cfg.Theme.Colors == nil {
		cfg.Theme.Colors = map[string]string{}
	}
	return &cfg, nil
}

// dropNil removes empty YAML values, which have no TOML form.
func dropNil(m map[string]any) {
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			delete(m, k)
		case map[string]any:
			dropNil(t)
		}
	}
}

// Validate checks every setting and reports all failures at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if c.Editor.TabSize < 1 {
		add("editor.tab_size", "must be at least 1", c.Editor.TabSize)
	}
	if c.Editor.QuitTimes < 1 {
		add("editor.quit_times", "must be at least 1", c.Editor.QuitTimes)
	}
	if c.Editor.GutterWidth < 0 {
		add("editor.gutter_width", "must not be negative", c.Editor.GutterWidth)
	}
	if c.Editor.UndoLevels < 0 {
		add("editor.undo_levels", "must not be negative", c.Editor.UndoLevels)
	}

	if _, err := highlight.ThemeByName(c.Theme.Name); err != nil {
		add("theme.name", "unknown theme, expected one of "+strings.Join(highlight.ThemeNames(), ", "), c.Theme.Name)
	}
	for _, name := range sortedKeys(c.Theme.Colors) {
		path := "theme.colors." + name
		if _, ok := buffer.ParseTag(name); !ok {
			add(path, "unknown highlight tag", name)
			continue
		}
		if _, err := core.ColorFromHex(c.Theme.Colors[name]); err != nil {
			add(path, "malformed color, expected #rrggbb", c.Theme.Colors[name])
		}
	}

	if err := dispatcher.DefaultKeymap().Override(c.Keymap); err != nil {
		add("keymap", err.Error(), c.Keymap)
	}

	if c.Log.Level != "" && !slices.Contains(LogLevels, strings.ToLower(c.Log.Level)) {
		add("log.level", "unknown level", c.Log.Level)
	}

	return errors.Join(errs...)
}

// Settings returns the editing options for a session.
func (c *Config) Settings() editor.Settings {
	return editor.Settings{
		TabSize:             c.Editor.TabSize,
		SoftTabs:            c.Editor.SoftTabs,
		AutoIndent:          c.Editor.AutoIndent,
		QuitTimes:           c.Editor.QuitTimes,
		SearchCaseSensitive: c.Editor.SearchCaseSensitive,
		SearchWrapAround:    c.Editor.SearchWrapAround,
		UndoLevels:          c.Editor.UndoLevels,
	}
}

// RendererOptions returns the gutter options.
func (c *Config) RendererOptions() renderer.Options {
	return renderer.Options{
		ShowLineNumbers: c.Editor.ShowLineNumbers,
		GutterWidth:     c.Editor.GutterWidth,
	}
}

// ResolveTheme returns the named theme with the color overrides applied.
func (c *Config) ResolveTheme() (*highlight.Theme, error) {
	theme, err := highlight.ThemeByName(c.Theme.Name)
	if err != nil {
		return nil, err
	}
	if err := theme.Override(c.Theme.Colors); err != nil {
		return nil, err
	}
	return theme, nil
}

// ResolveKeymap returns the default keymap with the [keymap] overrides.
func (c *Config) ResolveKeymap() (*dispatcher.Keymap, error) {
	km := dispatcher.DefaultKeymap()
	if err := km.Override(c.Keymap); err != nil {
		return nil, err
	}
	return km, nil
}

// ResolveProfiles returns the built-in language profiles plus those in
// languages.path. A leading "~/" expands to the home directory.
func (c *Config) ResolveProfiles() (*highlight.Registry, error) {
	reg := highlight.DefaultRegistry()
	if c.Languages.Path == "" {
		return reg, nil
	}
	path, err := expandHome(c.Languages.Path)
	if err != nil {
		return reg, err
	}
	if _, err := reg.LoadProfilesFile(path); err != nil {
		return reg, fmt.Errorf("languages.path: %w", err)
	}
	return reg, nil
}

func expandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, rest), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
