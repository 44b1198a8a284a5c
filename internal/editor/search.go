package editor

import (
	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/engine/cursor"
	"github.com/dshills/quill/internal/engine/search"
)

// searchPrompt is the state of an open search prompt.
type searchPrompt struct {
	query string
	// origin is the cursor when the prompt opened; cancelling returns to it.
	origin cursor.State
	found  bool
}

// Prompt returns the query being typed and whether the prompt is open.
func (s *Session) Prompt() (string, bool) {
	if s.prompt == nil {
		return "", false
	}
	return s.prompt.query, true
}

func (s *Session) promptMessage() {
	s.Messagef("Search: %s (Use ESC/Arrows/Enter)", s.prompt.query)
}

func (s *Session) performSearch(a dispatcher.Action, in dispatcher.Input) dispatcher.Result {
	se := s.eng.Search()

	if a == dispatcher.ActionSearchBegin {
		s.eng.ClearSelection()
		se.Cancel()
		s.prompt = &searchPrompt{origin: s.eng.Cursor().State()}
		s.promptMessage()
		return dispatcher.OK()
	}

	if a == dispatcher.ActionSearchRepeat {
		query := se.State().Query
		if query == "" {
			return dispatcher.NoOpWithMessage("No previous search")
		}
		s.eng.ClearSelection()
		if _, ok := se.Find(query, s.eng.Position(), search.Forward); !ok {
			s.Messagef("No match for %s", query)
			return dispatcher.NoOp()
		}
		return dispatcher.OK()
	}

	p := s.prompt
	if p == nil {
		return dispatcher.NoOp()
	}

	switch a {
	case dispatcher.ActionSearchInput:
		text := in.Text
		if text == "" {
			text = string(in.Key.Rune)
		}
		p.query += text
		s.searchFromOrigin()

	case dispatcher.ActionSearchBackspace:
		if r := []rune(p.query); len(r) > 0 {
			p.query = string(r[:len(r)-1])
		}
		s.searchFromOrigin()

	case dispatcher.ActionSearchNext, dispatcher.ActionSearchPrev:
		dir := search.Forward
		if a == dispatcher.ActionSearchPrev {
			dir = search.Backward
		}
		if p.query != "" {
			_, p.found = se.Next(dir, s.eng.Position())
		}
		s.promptMessage()

	case dispatcher.ActionSearchAccept:
		s.prompt = nil
		se.Cancel()
		if p.query != "" && !p.found {
			s.Messagef("No match for %s", p.query)
		} else {
			s.SetMessage("")
		}

	case dispatcher.ActionSearchCancel:
		s.prompt = nil
		se.Cancel()
		s.eng.Cursor().SetState(p.origin)
		s.SetMessage("")
	}
	return dispatcher.OK()
}

// searchFromOrigin re-runs the prompt query from where the prompt opened.
// An empty query returns the cursor to the origin.
func (s *Session) searchFromOrigin() {
	p := s.prompt
	se := s.eng.Search()
	if p.query == "" {
		se.Cancel()
		s.eng.Cursor().SetState(p.origin)
		p.found = false
	} else {
		_, p.found = se.FindFrom(p.query, p.origin.Position(), search.Forward)
	}
	s.promptMessage()
}
