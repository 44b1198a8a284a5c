package dispatcher

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/dshills/quill/internal/input/key"
)

// Input carries the event an action responds to. Text is set for pasted
// text.
type Input struct {
	Key  key.Event
	Text string
}

// Target applies actions. It is normally the editing session, which also
// owns the dispatch State.
type Target interface {
	// DispatchState returns the session's dispatch state.
	DispatchState() *State

	// Checkpoint captures everything an action may change.
	Checkpoint() any

	// Restore returns the target to a checkpoint.
	Restore(cp any)

	// Perform applies a single action.
	Perform(a Action, in Input) Result

	// Modified reports whether the document has unsaved changes.
	Modified() bool

	// SetMessage shows a message to the user.
	SetMessage(msg string)
}

// Logger receives dispatcher diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

// Dispatcher resolves key events against the keymap and applies actions
// atomically.
type Dispatcher struct {
	keymap  *Keymap
	metrics *Metrics
	logger  Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithKeymap sets the keymap. The default is DefaultKeymap.
func WithKeymap(km *Keymap) Option {
	return func(d *Dispatcher) {
		d.keymap = km
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithMetrics enables dispatch metrics.
func WithMetrics() Option {
	return func(d *Dispatcher) {
		d.metrics = NewMetrics()
	}
}

// New creates a dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	if d.keymap == nil {
		d.keymap = DefaultKeymap()
	}
	return d
}

// Keymap returns the active keymap.
func (d *Dispatcher) Keymap() *Keymap {
	return d.keymap
}

// SetKeymap replaces the keymap.
func (d *Dispatcher) SetKeymap(km *Keymap) {
	d.keymap = km
}

// Metrics returns the metrics collector, or nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Dispatch handles one key event.
func (d *Dispatcher) Dispatch(t Target, ev key.Event) Result {
	st := t.DispatchState()
	ev = ev.Normalize()

	if st.Context == ContextConfirmQuit {
		if tr, ok := d.keymap.Lookup(ContextConfirmQuit, ev); ok && tr.Action == ActionQuit {
			return d.quit(t, st)
		}
		// Keys no table knows leave the confirmation pending.
		if _, ok := d.keymap.Lookup(ContextEditing, ev); !ok {
			return NoOp()
		}
		st.Quit.Reset()
		st.Context = ContextEditing
	}

	tr, ok := d.keymap.Lookup(st.Context, ev)
	if !ok {
		return NoOp()
	}
	if tr.Action == ActionQuit {
		return d.quit(t, st)
	}

	res := d.execute(t, tr.Action, Input{Key: ev})
	if res.Status != StatusError {
		st.Context = tr.Next
	}
	return res
}

// Paste handles text delivered in one piece by the terminal. In the
// search prompt it extends the query; otherwise it is inserted.
func (d *Dispatcher) Paste(t Target, text string) Result {
	if text == "" {
		return NoOp()
	}
	st := t.DispatchState()
	if st.Context == ContextConfirmQuit {
		st.Quit.Reset()
		st.Context = ContextEditing
	}
	a := ActionPasteText
	if st.Context == ContextSearchPrompt {
		a = ActionSearchInput
	}
	return d.execute(t, a, Input{Text: text})
}

// QuitKey returns the display spec of the quit key, such as "Ctrl-Q".
func (d *Dispatcher) QuitKey() string {
	keys := d.keymap.KeysFor(ContextEditing, ActionQuit)
	if len(keys) == 0 {
		return "quit"
	}
	return strings.ReplaceAll(keys[0].String(), "+", "-")
}

func (d *Dispatcher) quit(t Target, st *State) Result {
	if !t.Modified() || st.Quit.Press() {
		return Quit()
	}
	st.Context = ContextConfirmQuit
	msg := fmt.Sprintf("WARNING!!! File has unsaved changes. Press %s %d more times to quit.",
		d.QuitKey(), st.Quit.Remaining)
	t.SetMessage(msg)
	return Result{Status: StatusOK, Action: ActionQuit, Message: msg}
}

// execute runs a with panic recovery. A failed or panicking action is
// rolled back to the checkpoint taken before it ran.
func (d *Dispatcher) execute(t Target, a Action, in Input) (res Result) {
	start := time.Now()
	cp := t.Checkpoint()

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			t.Restore(cp)
			res = Error(fmt.Errorf("%w: %s: %v", ErrPanic, a, r))
			if d.logger != nil {
				d.logger.Error("action %s panicked: %v", a, r)
				d.logger.Debug("action %s stack:\n%s", a, stack[:n])
			}
			if d.metrics != nil {
				d.metrics.RecordPanic()
			}
		}
		res.Action = a
		if res.Status == StatusError {
			if res.Message == "" && res.Error != nil {
				res.Message = res.Error.Error()
			}
			t.SetMessage(res.Message)
		}
		if d.metrics != nil {
			d.metrics.RecordDispatch(a, time.Since(start), res.Status)
		}
	}()

	res = t.Perform(a, in)
	if res.Status == StatusError {
		t.Restore(cp)
		if d.logger != nil {
			d.logger.Error("action %s failed: %v", a, res.Error)
		}
	}
	return res
}
