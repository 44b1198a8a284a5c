package editor

import (
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/search"
)

// Settings are the editing options a session reads.
type Settings struct {
	TabSize             int
	SoftTabs            bool
	AutoIndent          bool
	QuitTimes           int
	SearchCaseSensitive bool
	SearchWrapAround    bool
	UndoLevels          int
}

// DefaultSettings returns the built-in editing options.
func DefaultSettings() Settings {
	return Settings{
		TabSize:          engine.DefaultTabSize,
		AutoIndent:       true,
		QuitTimes:        3,
		SearchWrapAround: true,
		UndoLevels:       engine.DefaultMaxUndoEntries,
	}
}

func (s Settings) searchOptions() search.Options {
	return search.Options{
		CaseSensitive: s.SearchCaseSensitive,
		WrapAround:    s.SearchWrapAround,
	}
}
