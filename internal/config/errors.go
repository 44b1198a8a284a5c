package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue matches every ValidationError.
var ErrInvalidValue = errors.New("invalid config value")

// ValidationError describes a setting that failed validation.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "editor.tab_size".
	Path    string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is makes errors.Is(err, ErrInvalidValue) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidValue
}
