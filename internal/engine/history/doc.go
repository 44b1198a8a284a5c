// Package history provides undo/redo for an editing session.
//
// Each undo step is an Entry: a buffer snapshot plus the cursor state at the
// moment before an edit. Snapshots share unchanged lines with the live
// buffer, so recording one costs a copy of the line slice.
//
//	h := history.NewHistory(100)
//	h.Record("", entry)       // before a structural edit
//	h.Record("insert", entry) // consecutive inserts collapse into one step
//	prev, err := h.Undo(current)
package history
