// Package editor holds the state of one editing session and implements
// the dispatcher's action set against it.
//
// A Session owns the document engine, the syntax highlighter, the dispatch
// state, the search prompt, the in-session clipboard and the user message.
// Nothing here is shared between goroutines; the event loop drives a
// session one event at a time:
//
//	res := d.Dispatch(s, ev) // action applied atomically
//	s.Update(height, width)  // re-tag, refresh overlay, clamp, scroll
//
// Update fixes the recomputation order: edits mark lines dirty, the
// highlighter re-tags them and cascades, the search overlay is re-applied,
// the cursor is clamped and finally the viewport scrolls to keep it
// visible.
package editor
