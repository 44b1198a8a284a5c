// Package cursor provides the cursor controller and selection model.
//
// A Controller owns the logical position (line, character index), the
// cached render column and the viewport scroll offsets. It reads the
// document only through the Document interface, so any line store that can
// report line lengths and translate between character indices and screen
// columns can drive it.
//
// Horizontal movement wraps across line boundaries. Vertical movement
// remembers the render column the user was on and re-derives the nearest
// character on each destination line, which keeps the cursor visually
// steady over lines with different tab usage.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// Controller and Selection are not safe for concurrent use.
package cursor
