package app

import (
	"github.com/atotto/clipboard"
)

// SystemClipboard is the OS clipboard. When the platform has no clipboard
// tool every call returns ErrClipboardUnavailable and the session falls
// back to its own clipboard stack.
type SystemClipboard struct {
	unsupported bool
}

// NewSystemClipboard probes for clipboard support.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{unsupported: clipboard.Unsupported}
}

// Available reports whether the OS clipboard can be used.
func (c *SystemClipboard) Available() bool {
	return !c.unsupported
}

// ReadText returns the clipboard contents.
func (c *SystemClipboard) ReadText() (string, error) {
	if c.unsupported {
		return "", ErrClipboardUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", NewOperationError("clipboard", "read", err)
	}
	return text, nil
}

// WriteText replaces the clipboard contents.
func (c *SystemClipboard) WriteText(text string) error {
	if c.unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return NewOperationError("clipboard", "write", err)
	}
	return nil
}
