package engine

import (
	"errors"

	"github.com/dshills/quill/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("read-only buffer")

	// ErrNoSelection indicates an operation needs a selection.
	ErrNoSelection = errors.New("no selection")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo
)
