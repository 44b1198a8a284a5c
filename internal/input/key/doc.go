// Package key provides the editor's key event type and the key
// specification parser used for keymap overrides.
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "1", "Enter", "Escape", "F3"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Shift+Left"
//   - Vim-style: "<C-s>", "<A-f>", "<S-Left>", "<CR>", "<Esc>"
//
// Events are normalized so that a parsed spec and the event a terminal
// delivers for the same key press compare equal.
package key
