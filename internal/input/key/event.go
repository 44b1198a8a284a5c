package key

import (
	"unicode"

	"github.com/dshills/quill/internal/renderer/backend"
)

// Event represents a single normalized key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// Rune creates a key event for a character.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Ctrl creates a control chord such as Ctrl+S.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModCtrl}
}

// Special creates a key event for a special key.
func Special(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Normalize returns the canonical form of e. Shift is dropped from plain
// characters since it is already part of the character; chords with Ctrl
// use the lower-case letter.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		e.Rune = 0
		return e
	}
	if e.Modifiers.Has(ModCtrl) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	if !e.Modifiers.Has(ModCtrl | ModAlt | ModMeta) {
		e.Modifiers = e.Modifiers.Without(ModShift)
	}
	return e
}

// IsChar returns true if this is a printable character without command
// modifiers.
func (e Event) IsChar() bool {
	return e.Key == KeyRune && e.Rune != 0 && unicode.IsPrint(e.Rune) &&
		!e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Normalize() == other.Normalize()
}

// String returns a canonical spec such as "Ctrl+S", "Shift+Left" or "a".
func (e Event) String() string {
	e = e.Normalize()
	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune && e.Modifiers.Has(ModCtrl):
		name = string(unicode.ToUpper(e.Rune))
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// FromBackend converts a terminal key event. Non-key events yield KeyNone.
func FromBackend(ev backend.Event) Event {
	if ev.Type != backend.EventKey {
		return Event{}
	}
	var mods Modifier
	if ev.Mod.Has(backend.ModShift) {
		mods |= ModShift
	}
	if ev.Mod.Has(backend.ModCtrl) {
		mods |= ModCtrl
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods |= ModAlt
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods |= ModMeta
	}

	k, ok := backendKeys[ev.Key]
	if !ok {
		return Event{}
	}
	e := Event{Key: k, Modifiers: mods}
	if k == KeyRune {
		e.Rune = ev.Rune
	}
	return e.Normalize()
}

var backendKeys = map[backend.Key]Key{
	backend.KeyRune:      KeyRune,
	backend.KeyEscape:    KeyEscape,
	backend.KeyEnter:     KeyEnter,
	backend.KeyTab:       KeyTab,
	backend.KeyBacktab:   KeyBacktab,
	backend.KeyBackspace: KeyBackspace,
	backend.KeyDelete:    KeyDelete,
	backend.KeyInsert:    KeyInsert,
	backend.KeyHome:      KeyHome,
	backend.KeyEnd:       KeyEnd,
	backend.KeyPageUp:    KeyPageUp,
	backend.KeyPageDown:  KeyPageDown,
	backend.KeyUp:        KeyUp,
	backend.KeyDown:      KeyDown,
	backend.KeyLeft:      KeyLeft,
	backend.KeyRight:     KeyRight,
	backend.KeyF1:        KeyF1,
	backend.KeyF2:        KeyF2,
	backend.KeyF3:        KeyF3,
	backend.KeyF4:        KeyF4,
	backend.KeyF5:        KeyF5,
	backend.KeyF6:        KeyF6,
	backend.KeyF7:        KeyF7,
	backend.KeyF8:        KeyF8,
	backend.KeyF9:        KeyF9,
	backend.KeyF10:       KeyF10,
	backend.KeyF11:       KeyF11,
	backend.KeyF12:       KeyF12,
}
