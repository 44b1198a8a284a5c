package config

// EditorConfig holds the [editor] options.
type EditorConfig struct {
	// TabSize is the number of columns per tab stop.
	TabSize int `toml:"tab_size"`

	// SoftTabs inserts spaces instead of a tab character.
	SoftTabs bool `toml:"soft_tabs"`

	// AutoIndent copies the leading whitespace of the line being split.
	AutoIndent bool `toml:"auto_indent"`

	ShowLineNumbers bool `toml:"show_line_numbers"`

	// GutterWidth is the gutter column count; 0 sizes it from the line count.
	GutterWidth int `toml:"gutter_width"`

	// QuitTimes is how many quit presses a modified document needs.
	QuitTimes int `toml:"quit_times"`

	SearchCaseSensitive bool `toml:"search_case_sensitive"`
	SearchWrapAround    bool `toml:"search_wrap_around"`

	// UndoLevels bounds the undo stack.
	UndoLevels int `toml:"undo_levels"`
}

// ThemeConfig holds the [theme] options.
type ThemeConfig struct {
	Name string `toml:"name"`

	// Colors maps highlight tag names to "#rrggbb" foreground colors.
	Colors map[string]string `toml:"colors"`
}

// LanguagesConfig holds the [languages] options.
type LanguagesConfig struct {
	// Path names a YAML file of extra language profiles.
	Path string `toml:"path"`
}

// LogConfig holds the [log] options.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
