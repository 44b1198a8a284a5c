package editor

import (
	"errors"
	"fmt"

	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/cursor"
)

var moves = map[dispatcher.Action]cursor.Direction{
	dispatcher.ActionMoveUp:            cursor.Up,
	dispatcher.ActionMoveDown:          cursor.Down,
	dispatcher.ActionMoveLeft:          cursor.Left,
	dispatcher.ActionMoveRight:         cursor.Right,
	dispatcher.ActionMoveLineStart:     cursor.LineStart,
	dispatcher.ActionMoveLineEnd:       cursor.LineEnd,
	dispatcher.ActionMoveDocumentStart: cursor.DocumentStart,
	dispatcher.ActionMoveDocumentEnd:   cursor.DocumentEnd,
	dispatcher.ActionMovePageUp:        cursor.PageUp,
	dispatcher.ActionMovePageDown:      cursor.PageDown,
}

var selects = map[dispatcher.Action]cursor.Direction{
	dispatcher.ActionSelectUp:        cursor.Up,
	dispatcher.ActionSelectDown:      cursor.Down,
	dispatcher.ActionSelectLeft:      cursor.Left,
	dispatcher.ActionSelectRight:     cursor.Right,
	dispatcher.ActionSelectLineStart: cursor.LineStart,
	dispatcher.ActionSelectLineEnd:   cursor.LineEnd,
}

// Perform applies one action. It implements dispatcher.Target. An action
// that finds the cursor outside the document is aborted and the cursor is
// clamped back in.
func (s *Session) Perform(a dispatcher.Action, in dispatcher.Input) dispatcher.Result {
	if !s.eng.Cursor().Valid() {
		s.eng.Clamp()
		return dispatcher.Error(fmt.Errorf("%w: %s aborted", ErrInvalidCursor, a))
	}
	res := s.perform(a, in)
	if res.Message != "" && res.Status != dispatcher.StatusError {
		s.SetMessage(res.Message)
	}
	return res
}

func (s *Session) perform(a dispatcher.Action, in dispatcher.Input) dispatcher.Result {
	if a.IsSearch() || a == dispatcher.ActionSearchBegin || a == dispatcher.ActionSearchRepeat {
		return s.performSearch(a, in)
	}

	// Leaving search: the match highlight does not outlive the next action.
	s.eng.Search().Cancel()

	if dir, ok := moves[a]; ok {
		s.eng.Move(dir, 1)
		return dispatcher.OK()
	}
	if dir, ok := selects[a]; ok {
		s.eng.Select(dir)
		return dispatcher.OK()
	}

	switch a {
	case dispatcher.ActionInsertChar:
		return s.edit(s.eng.InsertChar(in.Key.Rune))
	case dispatcher.ActionInsertTab:
		return s.edit(s.eng.InsertTab())
	case dispatcher.ActionInsertNewline:
		return s.edit(s.eng.InsertNewline())
	case dispatcher.ActionDeleteBackward:
		return s.edit(s.eng.DeleteBackward())
	case dispatcher.ActionDeleteForward:
		return s.edit(s.eng.DeleteForward())
	case dispatcher.ActionDeleteLine:
		return s.edit(s.eng.DeleteLine())
	case dispatcher.ActionPasteText:
		return s.edit(s.eng.InsertText(in.Text))
	case dispatcher.ActionUndo:
		return s.edit(s.eng.Undo())
	case dispatcher.ActionRedo:
		return s.edit(s.eng.Redo())
	case dispatcher.ActionCopy:
		return s.copySelection()
	case dispatcher.ActionCut:
		return s.cut()
	case dispatcher.ActionPaste:
		return s.paste()
	case dispatcher.ActionSave:
		return s.save()
	}
	return dispatcher.NoOp()
}

// edit converts an engine error into a result. Refusals and empty stacks
// are reported as messages, not failures.
func (s *Session) edit(err error) dispatcher.Result {
	switch {
	case err == nil:
		return dispatcher.OK()
	case errors.Is(err, engine.ErrReadOnly):
		return dispatcher.NoOpWithMessage("Read-only buffer")
	case errors.Is(err, engine.ErrNothingToUndo):
		return dispatcher.NoOpWithMessage("Nothing to undo")
	case errors.Is(err, engine.ErrNothingToRedo):
		return dispatcher.NoOpWithMessage("Nothing to redo")
	case errors.Is(err, engine.ErrNoSelection):
		return dispatcher.NoOpWithMessage("Nothing selected")
	default:
		return dispatcher.Error(err)
	}
}

func (s *Session) copySelection() dispatcher.Result {
	text, ok := s.eng.SelectedText()
	if !ok {
		return dispatcher.NoOpWithMessage("Nothing selected")
	}
	if !s.copyOut(text) {
		return dispatcher.OKWithMessage("Copied (system clipboard unavailable)")
	}
	return dispatcher.OKWithMessage("Copied")
}

func (s *Session) cut() dispatcher.Result {
	text, err := s.eng.CutSelection()
	if err != nil {
		return s.edit(err)
	}
	s.copyOut(text)
	return dispatcher.OK()
}

func (s *Session) paste() dispatcher.Result {
	text, ok := s.pasteIn()
	if !ok {
		return dispatcher.NoOpWithMessage("Clipboard is empty")
	}
	return s.edit(s.eng.InsertText(text))
}

// save hands a snapshot to the saver and marks that version saved only
// when the write succeeded.
func (s *Session) save() dispatcher.Result {
	if s.eng.ReadOnly() {
		return dispatcher.NoOpWithMessage("Read-only buffer")
	}
	if s.filename == "" {
		return dispatcher.Error(ErrNoFilename)
	}
	if s.saver == nil {
		return dispatcher.Error(ErrNoSaver)
	}
	snap := s.eng.Snapshot()
	n, err := s.saver.Save(s.filename, snap)
	if err != nil {
		return dispatcher.Error(fmt.Errorf("can't save: %w", err))
	}
	s.eng.MarkSaved(snap.Version())
	return dispatcher.OKWithMessage(fmt.Sprintf("%d bytes written to disk", n))
}
