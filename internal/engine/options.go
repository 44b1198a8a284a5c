package engine

import (
	"github.com/dshills/quill/internal/engine/history"
	"github.com/dshills/quill/internal/engine/search"
)

// Default configuration values.
const (
	DefaultTabSize        = 4
	DefaultMaxUndoEntries = history.DefaultMaxEntries
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithLines sets the initial content. No lines means one blank line.
func WithLines(lines []string) Option {
	return func(e *Engine) {
		e.initLines = lines
	}
}

// WithContent sets the initial content from text split on newlines.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
		e.hasContent = true
	}
}

// WithTabSize sets the tab stop width.
func WithTabSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.tabSize = size
		}
	}
}

// WithSoftTabs makes Tab insert spaces up to the next tab stop.
func WithSoftTabs(on bool) Option {
	return func(e *Engine) {
		e.softTabs = on
	}
}

// WithAutoIndent makes a new line copy the leading whitespace of the line
// it was split from.
func WithAutoIndent(on bool) Option {
	return func(e *Engine) {
		e.autoIndent = on
	}
}

// WithMaxUndoEntries sets the maximum number of undo steps.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxUndo = n
		}
	}
}

// WithSearchOptions sets the search matching options.
func WithSearchOptions(opts search.Options) Option {
	return func(e *Engine) {
		e.searchOpts = opts
	}
}

// WithReadOnly creates a read-only engine. Edits return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
