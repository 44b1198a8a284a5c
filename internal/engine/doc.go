// Package engine combines the line store, cursor controller, undo history
// and search engine of one document into a single editing facade.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: ordered lines with render strings and highlight tags
//   - cursor: logical cursor, render column, viewport offsets, selection
//   - history: undo/redo stack of buffer and cursor snapshots
//   - search: directional wrap-around search with a match overlay
//
// Every edit goes through the engine so the cursor always follows the
// position the line store returns, and so each edit records one undo step.
//
// # Checkpoints
//
// Checkpoint captures the buffer lines, cursor, selection and search state
// in constant time per line; Rollback returns to it exactly, version
// included. The dispatcher uses this pair to make actions atomic:
//
//	cp := e.Checkpoint()
//	if err := e.InsertText("abc"); err != nil {
//	    e.Rollback(cp)
//	}
//
// # Thread Safety
//
// An Engine belongs to a single editing session and is not safe for
// concurrent use.
package engine
