package dispatcher

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/quill/internal/input/key"
)

// Transition is one row of the transition table.
type Transition struct {
	Action Action
	Next   Context
}

// Keymap holds the transition table for every context.
type Keymap struct {
	tables map[Context]map[key.Event]Transition
	// chars handles printable characters with no explicit binding.
	chars map[Context]Transition
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	km := &Keymap{
		tables: make(map[Context]map[key.Event]Transition),
		chars:  make(map[Context]Transition),
	}
	for _, c := range Contexts() {
		km.tables[c] = make(map[key.Event]Transition)
	}
	return km
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() *Keymap {
	km := NewKeymap()

	edit := func(ev key.Event, a Action) {
		km.Bind(ContextEditing, ev, a, ContextEditing)
	}
	edit(key.Special(key.KeyUp, key.ModNone), ActionMoveUp)
	edit(key.Special(key.KeyDown, key.ModNone), ActionMoveDown)
	edit(key.Special(key.KeyLeft, key.ModNone), ActionMoveLeft)
	edit(key.Special(key.KeyRight, key.ModNone), ActionMoveRight)
	edit(key.Special(key.KeyHome, key.ModNone), ActionMoveLineStart)
	edit(key.Special(key.KeyEnd, key.ModNone), ActionMoveLineEnd)
	edit(key.Special(key.KeyHome, key.ModCtrl), ActionMoveDocumentStart)
	edit(key.Special(key.KeyEnd, key.ModCtrl), ActionMoveDocumentEnd)
	edit(key.Special(key.KeyPageUp, key.ModNone), ActionMovePageUp)
	edit(key.Special(key.KeyPageDown, key.ModNone), ActionMovePageDown)

	edit(key.Special(key.KeyUp, key.ModShift), ActionSelectUp)
	edit(key.Special(key.KeyDown, key.ModShift), ActionSelectDown)
	edit(key.Special(key.KeyLeft, key.ModShift), ActionSelectLeft)
	edit(key.Special(key.KeyRight, key.ModShift), ActionSelectRight)
	edit(key.Special(key.KeyHome, key.ModShift), ActionSelectLineStart)
	edit(key.Special(key.KeyEnd, key.ModShift), ActionSelectLineEnd)

	edit(key.Special(key.KeyEnter, key.ModNone), ActionInsertNewline)
	edit(key.Special(key.KeyTab, key.ModNone), ActionInsertTab)
	edit(key.Special(key.KeyBackspace, key.ModNone), ActionDeleteBackward)
	edit(key.Ctrl('h'), ActionDeleteBackward)
	edit(key.Special(key.KeyDelete, key.ModNone), ActionDeleteForward)
	edit(key.Ctrl('k'), ActionDeleteLine)

	edit(key.Ctrl('z'), ActionUndo)
	edit(key.Ctrl('y'), ActionRedo)
	edit(key.Ctrl('c'), ActionCopy)
	edit(key.Ctrl('x'), ActionCut)
	edit(key.Ctrl('v'), ActionPaste)
	edit(key.Ctrl('s'), ActionSave)
	edit(key.Ctrl('q'), ActionQuit)
	edit(key.Special(key.KeyF3, key.ModNone), ActionSearchRepeat)
	km.Bind(ContextEditing, key.Ctrl('f'), ActionSearchBegin, ContextSearchPrompt)
	km.chars[ContextEditing] = Transition{ActionInsertChar, ContextEditing}

	prompt := func(ev key.Event, a Action, next Context) {
		km.Bind(ContextSearchPrompt, ev, a, next)
	}
	prompt(key.Special(key.KeyEscape, key.ModNone), ActionSearchCancel, ContextEditing)
	prompt(key.Ctrl('c'), ActionSearchCancel, ContextEditing)
	prompt(key.Special(key.KeyEnter, key.ModNone), ActionSearchAccept, ContextEditing)
	prompt(key.Special(key.KeyBackspace, key.ModNone), ActionSearchBackspace, ContextSearchPrompt)
	prompt(key.Ctrl('h'), ActionSearchBackspace, ContextSearchPrompt)
	prompt(key.Special(key.KeyDelete, key.ModNone), ActionSearchBackspace, ContextSearchPrompt)
	prompt(key.Special(key.KeyRight, key.ModNone), ActionSearchNext, ContextSearchPrompt)
	prompt(key.Special(key.KeyDown, key.ModNone), ActionSearchNext, ContextSearchPrompt)
	prompt(key.Special(key.KeyLeft, key.ModNone), ActionSearchPrev, ContextSearchPrompt)
	prompt(key.Special(key.KeyUp, key.ModNone), ActionSearchPrev, ContextSearchPrompt)
	km.chars[ContextSearchPrompt] = Transition{ActionSearchInput, ContextSearchPrompt}

	km.Bind(ContextConfirmQuit, key.Ctrl('q'), ActionQuit, ContextConfirmQuit)

	return km
}

// Bind adds or replaces the transition for ev in ctx.
func (k *Keymap) Bind(ctx Context, ev key.Event, a Action, next Context) {
	t, ok := k.tables[ctx]
	if !ok {
		t = make(map[key.Event]Transition)
		k.tables[ctx] = t
	}
	t[ev.Normalize()] = Transition{Action: a, Next: next}
}

// Unbind removes the transition for ev in ctx.
func (k *Keymap) Unbind(ctx Context, ev key.Event) {
	delete(k.tables[ctx], ev.Normalize())
}

// Lookup returns the transition for ev in ctx. Printable characters fall
// back to the context's character action when one is set.
func (k *Keymap) Lookup(ctx Context, ev key.Event) (Transition, bool) {
	ev = ev.Normalize()
	if t, ok := k.tables[ctx][ev]; ok {
		return t, true
	}
	if ev.IsChar() {
		if t, ok := k.chars[ctx]; ok {
			return t, true
		}
	}
	return Transition{}, false
}

// KeysFor returns the keys bound to a in ctx, sorted by their spec.
func (k *Keymap) KeysFor(ctx Context, a Action) []key.Event {
	var out []key.Event
	for ev, t := range k.tables[ctx] {
		if t.Action == a {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Override rebinds editing actions from a map of action name to key spec.
// The new key replaces every existing key for the action. Rebinding quit
// also rebinds the confirmation key. All entries are applied that can be;
// the returned error joins the failures.
func (k *Keymap) Override(bindings map[string]string) error {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := k.override(name, bindings[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (k *Keymap) override(name, spec string) error {
	a, err := ParseAction(name)
	if err != nil {
		return err
	}
	if !a.Bindable() {
		return fmt.Errorf("%w: %s", ErrNotBindable, a)
	}
	ev, err := key.Parse(spec)
	if err != nil {
		return fmt.Errorf("keymap %s: %w", name, err)
	}

	next := ContextEditing
	if a == ActionSearchBegin {
		next = ContextSearchPrompt
	}
	for _, old := range k.KeysFor(ContextEditing, a) {
		k.Unbind(ContextEditing, old)
	}
	k.Bind(ContextEditing, ev, a, next)

	if a == ActionQuit {
		for _, old := range k.KeysFor(ContextConfirmQuit, ActionQuit) {
			k.Unbind(ContextConfirmQuit, old)
		}
		k.Bind(ContextConfirmQuit, ev, ActionQuit, ContextConfirmQuit)
	}
	return nil
}
