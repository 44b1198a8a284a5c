package dispatcher

// Context names the active modal state and selects the keymap table.
type Context uint8

const (
	// ContextEditing is normal text editing.
	ContextEditing Context = iota
	// ContextSearchPrompt is active while a search query is being typed.
	ContextSearchPrompt
	// ContextConfirmQuit follows a refused quit on a modified document.
	ContextConfirmQuit
)

// Contexts returns every dispatch context.
func Contexts() []Context {
	return []Context{ContextEditing, ContextSearchPrompt, ContextConfirmQuit}
}

// String returns the context name.
func (c Context) String() string {
	switch c {
	case ContextEditing:
		return "editing"
	case ContextSearchPrompt:
		return "search-prompt"
	case ContextConfirmQuit:
		return "confirm-quit"
	default:
		return "unknown"
	}
}

// State is the dispatch state a session owns and threads through every
// Dispatch call.
type State struct {
	Context Context
	Quit    QuitCounter
}

// NewState returns a state in the editing context requiring quitTimes
// quit requests to abandon changes.
func NewState(quitTimes int) State {
	return State{Context: ContextEditing, Quit: NewQuitCounter(quitTimes)}
}
