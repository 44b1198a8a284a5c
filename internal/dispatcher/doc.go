// Package dispatcher maps key events to editor actions.
//
// The dispatcher is a finite-state machine. Its states are dispatch
// contexts (editing, search prompt, quit confirmation) and its transition
// table maps a (context, key event) pair to an action and the context to
// move to afterwards. Input with no entry in the active context is a
// no-op and leaves the context unchanged.
//
// # Atomic actions
//
// Actions run against a Target, normally the editing session. Before an
// action runs the dispatcher takes a checkpoint of the target; when the
// action returns an error or panics, the checkpoint is restored so the
// action has no visible effect. A recovered panic is reported as an error
// result carrying the captured stack, and the dispatcher stays in the
// context it was in.
//
// # Quit confirmation
//
// Quitting a modified document needs QuitTimes consecutive quit requests.
// Each request while modified counts down; reaching zero ends the session.
// Any other input resets the count and is then handled in the editing
// context as usual.
//
// # Key bindings
//
// DefaultKeymap returns the built-in tables. Editing bindings can be
// overridden by action name with Keymap.Override, using the key specs
// understood by key.Parse:
//
//	km := dispatcher.DefaultKeymap()
//	err := km.Override(map[string]string{"save": "Ctrl+W", "find": "<C-g>"})
package dispatcher
