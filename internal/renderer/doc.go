// Package renderer provides the display layer for the Quill editor.
//
// The renderer is responsible for:
//   - Slicing each visible line's render string to the viewport
//   - Turning highlight tags into styled runs, one per tag change
//   - Line number gutter and the status/message bars supplied by the caller
//   - Cursor placement
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│    Renderer: Build (Frame) + Flush      │
//	├─────────────────────────────────────────┤
//	│    Theme (tag -> style)  │  Gutter      │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│   Terminal (tcell) │ NullBackend        │
//	└─────────────────────────────────────────┘
//
// A frame is assembled completely in memory and written to the backend in
// one pass ending with a single Show, so the terminal never displays a
// partially drawn screen.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, highlight.DefaultTheme(), renderer.DefaultOptions())
//	r.Draw(buf, view)
package renderer
