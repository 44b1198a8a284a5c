package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a normalized Event.
//
// Supported formats:
//   - Single character: "a", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space", "F3"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Shift+Left"
//   - Vim-style: "<C-s>", "<A-f>", "<S-Left>", "<CR>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// Vim-style <...> notation; a bare "<" or ">" is a character.
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"), true)
	}

	// Modifier+key format; "+" alone is a character.
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseParts(strings.Split(spec, "+"), false)
	}

	return parseKey(spec, ModNone)
}

// parseParts treats every part but the last as a modifier name.
func parseParts(parts []string, vim bool) (Event, error) {
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		p = strings.ToLower(strings.TrimSpace(p))
		mod, ok := modifierNameMap[p]
		if !ok || (vim && len(p) != 1) {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

// parseKey parses a key name or single character.
func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}

	lower := strings.ToLower(name)
	if k := KeyFromName(lower); k != KeyNone {
		return Special(k, mods), nil
	}
	if r, ok := runeNames[lower]; ok {
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}.Normalize(), nil
	}

	runes := []rune(name)
	if len(runes) == 1 {
		return Event{Key: KeyRune, Rune: runes[0], Modifiers: mods}.Normalize(), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
