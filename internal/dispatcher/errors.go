package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrPanic indicates an action panicked and was rolled back.
	ErrPanic = errors.New("dispatcher: action panic")

	// ErrUnknownAction indicates an action name that is not defined.
	ErrUnknownAction = errors.New("dispatcher: unknown action")

	// ErrNotBindable indicates an action that cannot be bound to a key
	// from configuration.
	ErrNotBindable = errors.New("dispatcher: action cannot be rebound")
)
