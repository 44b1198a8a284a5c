package dispatcher

import "fmt"

// Status represents the outcome of a dispatched event.
type Status uint8

const (
	// StatusOK indicates the action was applied.
	StatusOK Status = iota
	// StatusNoOp indicates nothing happened, either because no binding
	// matched or because the action had nothing to do.
	StatusNoOp
	// StatusError indicates the action failed and was rolled back.
	StatusError
	// StatusQuit indicates the session should end.
	StatusQuit
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Result is the outcome of dispatching one event.
type Result struct {
	Status Status
	// Action is the action that ran, or ActionNone.
	Action Action
	// Error holds the failure for StatusError.
	Error error
	// Message is an optional user-facing message.
	Message string
}

// OK returns a successful result.
func OK() Result {
	return Result{Status: StatusOK}
}

// OKWithMessage returns a successful result carrying a message.
func OKWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// NoOp returns a result for an action that changed nothing.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage returns a no-op result carrying a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error returns a failed result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err, Message: err.Error()}
}

// Errorf returns a failed result with a formatted error.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// Quit returns a result ending the session.
func Quit() Result {
	return Result{Status: StatusQuit, Action: ActionQuit}
}

// IsError returns true if the result is an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}
