package editor

// maxClips bounds the in-session clipboard stack.
const maxClips = 10

// clipStack keeps recently copied text, newest last.
type clipStack struct {
	items []string
}

func (c *clipStack) push(text string) {
	if text == "" {
		return
	}
	c.items = append(c.items, text)
	if len(c.items) > maxClips {
		c.items = c.items[len(c.items)-maxClips:]
	}
}

func (c *clipStack) top() (string, bool) {
	if len(c.items) == 0 {
		return "", false
	}
	return c.items[len(c.items)-1], true
}

// Clips returns the in-session clipboard entries, newest last.
func (s *Session) Clips() []string {
	return append([]string(nil), s.clips.items...)
}

// copyOut stores text in the session stack and the system clipboard.
// It reports whether the system clipboard accepted it.
func (s *Session) copyOut(text string) bool {
	s.clips.push(text)
	if s.clipboard == nil {
		return false
	}
	return s.clipboard.WriteText(text) == nil
}

// pasteIn returns the system clipboard text, falling back to the newest
// session entry when the system clipboard is empty or unavailable.
func (s *Session) pasteIn() (string, bool) {
	if s.clipboard != nil {
		if text, err := s.clipboard.ReadText(); err == nil && text != "" {
			return text, true
		}
	}
	return s.clips.top()
}
