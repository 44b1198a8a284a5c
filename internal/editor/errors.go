package editor

import "errors"

// Session errors.
var (
	// ErrNoFilename indicates a save without a file name.
	ErrNoFilename = errors.New("no file name")

	// ErrNoSaver indicates a save with no storage collaborator.
	ErrNoSaver = errors.New("no storage configured")

	// ErrInvalidCursor indicates the cursor no longer references a
	// position in the document when an action was about to run.
	ErrInvalidCursor = errors.New("cursor outside the document")
)
