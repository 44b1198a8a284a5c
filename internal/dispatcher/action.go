package dispatcher

import "fmt"

// Action is one editor operation. The set is closed; every action is
// implemented by the Target.
type Action uint8

const (
	ActionNone Action = iota

	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMoveLineStart
	ActionMoveLineEnd
	ActionMoveDocumentStart
	ActionMoveDocumentEnd
	ActionMovePageUp
	ActionMovePageDown

	ActionSelectUp
	ActionSelectDown
	ActionSelectLeft
	ActionSelectRight
	ActionSelectLineStart
	ActionSelectLineEnd

	ActionInsertChar
	ActionInsertTab
	ActionInsertNewline
	ActionDeleteBackward
	ActionDeleteForward
	ActionDeleteLine
	ActionPasteText

	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste

	ActionSave
	ActionQuit

	ActionSearchBegin
	ActionSearchInput
	ActionSearchBackspace
	ActionSearchNext
	ActionSearchPrev
	ActionSearchAccept
	ActionSearchCancel
	ActionSearchRepeat

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:              "none",
	ActionMoveUp:            "move_up",
	ActionMoveDown:          "move_down",
	ActionMoveLeft:          "move_left",
	ActionMoveRight:         "move_right",
	ActionMoveLineStart:     "move_line_start",
	ActionMoveLineEnd:       "move_line_end",
	ActionMoveDocumentStart: "move_document_start",
	ActionMoveDocumentEnd:   "move_document_end",
	ActionMovePageUp:        "page_up",
	ActionMovePageDown:      "page_down",
	ActionSelectUp:          "select_up",
	ActionSelectDown:        "select_down",
	ActionSelectLeft:        "select_left",
	ActionSelectRight:       "select_right",
	ActionSelectLineStart:   "select_line_start",
	ActionSelectLineEnd:     "select_line_end",
	ActionInsertChar:        "insert_char",
	ActionInsertTab:         "insert_tab",
	ActionInsertNewline:     "insert_newline",
	ActionDeleteBackward:    "delete_backward",
	ActionDeleteForward:     "delete_forward",
	ActionDeleteLine:        "delete_line",
	ActionPasteText:         "paste_text",
	ActionUndo:              "undo",
	ActionRedo:              "redo",
	ActionCopy:              "copy",
	ActionCut:               "cut",
	ActionPaste:             "paste",
	ActionSave:              "save",
	ActionQuit:              "quit",
	ActionSearchBegin:       "find",
	ActionSearchInput:       "search_input",
	ActionSearchBackspace:   "search_backspace",
	ActionSearchNext:        "search_next",
	ActionSearchPrev:        "search_prev",
	ActionSearchAccept:      "search_accept",
	ActionSearchCancel:      "search_cancel",
	ActionSearchRepeat:      "find_next",
}

// String returns the action name used in keymap configuration.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Actions returns every action except ActionNone.
func Actions() []Action {
	out := make([]Action, 0, actionCount-1)
	for a := ActionNone + 1; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// Modifies reports whether the action can change document content.
func (a Action) Modifies() bool {
	switch a {
	case ActionInsertChar, ActionInsertTab, ActionInsertNewline,
		ActionDeleteBackward, ActionDeleteForward, ActionDeleteLine,
		ActionPasteText, ActionUndo, ActionRedo, ActionCut, ActionPaste:
		return true
	}
	return false
}

// IsSearch reports whether the action belongs to the search prompt.
func (a Action) IsSearch() bool {
	return a >= ActionSearchInput && a <= ActionSearchCancel
}

// Bindable reports whether the action can be bound to a key in the
// editing context from configuration. Character insertion, pasted text
// and the search prompt keys are fixed.
func (a Action) Bindable() bool {
	return a != ActionNone && a < actionCount &&
		a != ActionInsertChar && a != ActionPasteText && !a.IsSearch()
}
