package editor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/engine"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/highlight"
)

// Saver writes a document snapshot to storage and returns the number of
// bytes written.
type Saver interface {
	Save(name string, snap buffer.Snapshot) (int, error)
}

// Clipboard transfers plain text to and from the system clipboard.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// Status is the read-only state the status and message bars display.
type Status struct {
	SessionID string
	Filename  string
	Modified  bool
	ReadOnly  bool
	Lines     int
	// Line and Col are the 0-based cursor position.
	Line    int
	Col     int
	Profile string
	Context dispatcher.Context

	Message     string
	MessageTime time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithFilename names the document for saving and display.
func WithFilename(name string) Option {
	return func(s *Session) {
		s.filename = name
	}
}

// WithLines sets the initial document content.
func WithLines(lines []string) Option {
	return func(s *Session) {
		s.lines = lines
	}
}

// WithProfile sets the language profile. Nil disables highlighting.
func WithProfile(p *highlight.Profile) Option {
	return func(s *Session) {
		s.profile = p
	}
}

// WithSaver sets the storage collaborator.
func WithSaver(sv Saver) Option {
	return func(s *Session) {
		s.saver = sv
	}
}

// WithClipboard sets the system clipboard collaborator.
func WithClipboard(c Clipboard) Option {
	return func(s *Session) {
		s.clipboard = c
	}
}

// WithReadOnly makes every edit a no-op.
func WithReadOnly() Option {
	return func(s *Session) {
		s.readOnly = true
	}
}

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithID sets the session id. The default is a random UUID.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// Session is one editing session.
type Session struct {
	id       string
	filename string
	settings Settings

	eng *engine.Engine
	hl  *highlight.Highlighter

	dispatch dispatcher.State
	prompt   *searchPrompt

	clipboard Clipboard
	clips     clipStack
	saver     Saver

	message     string
	messageTime time.Time
	now         func() time.Time

	// Initialization
	lines    []string
	profile  *highlight.Profile
	readOnly bool
}

// New creates a session.
func New(settings Settings, opts ...Option) *Session {
	s := &Session{settings: settings, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}

	engOpts := []engine.Option{
		engine.WithLines(s.lines),
		engine.WithTabSize(settings.TabSize),
		engine.WithSoftTabs(settings.SoftTabs),
		engine.WithAutoIndent(settings.AutoIndent),
		engine.WithMaxUndoEntries(settings.UndoLevels),
		engine.WithSearchOptions(settings.searchOptions()),
	}
	if s.readOnly {
		engOpts = append(engOpts, engine.WithReadOnly())
	}
	s.eng = engine.New(engOpts...)
	s.hl = highlight.New(s.profile)
	s.dispatch = dispatcher.NewState(settings.QuitTimes)
	s.lines, s.profile = nil, nil
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Engine returns the document engine.
func (s *Session) Engine() *engine.Engine {
	return s.eng
}

// Highlighter returns the syntax highlighter.
func (s *Session) Highlighter() *highlight.Highlighter {
	return s.hl
}

// Filename returns the document name.
func (s *Session) Filename() string {
	return s.filename
}

// SetFilename renames the document.
func (s *Session) SetFilename(name string) {
	s.filename = name
}

// Settings returns the active editing options.
func (s *Session) Settings() Settings {
	return s.settings
}

// Apply switches to new editing options. The undo limit only applies to
// new sessions.
func (s *Session) Apply(settings Settings) {
	s.settings = settings
	s.eng.SetTabSize(settings.TabSize)
	s.eng.SetSoftTabs(settings.SoftTabs)
	s.eng.SetAutoIndent(settings.AutoIndent)
	s.eng.SetSearchOptions(settings.searchOptions())
	s.dispatch.Quit.SetTimes(settings.QuitTimes)
}

// SetProfile switches the language profile and re-tags every line.
func (s *Session) SetProfile(p *highlight.Profile) {
	s.hl.SetProfile(p, s.eng.Buffer())
}

// Update brings derived state up to date after an event: dirty lines are
// re-tagged with the cascade, the search overlay is re-applied, the cursor
// is clamped and the viewport scrolled to keep it visible. It returns the
// number of lines re-tagged.
func (s *Session) Update(height, width int) int {
	n := s.hl.Update(s.eng.Buffer())
	s.eng.Search().Refresh()
	s.eng.Clamp()
	s.eng.ScrollToKeepVisible(height, width)
	return n
}

// Status returns the state for the status and message bars.
func (s *Session) Status() Status {
	pos := s.eng.Position()
	return Status{
		SessionID:   s.id,
		Filename:    s.filename,
		Modified:    s.eng.Modified(),
		ReadOnly:    s.eng.ReadOnly(),
		Lines:       s.eng.Buffer().LineCount(),
		Line:        pos.Line,
		Col:         pos.Col,
		Profile:     s.hl.Name(),
		Context:     s.dispatch.Context,
		Message:     s.message,
		MessageTime: s.messageTime,
	}
}

// Message returns the current message.
func (s *Session) Message() string {
	return s.message
}

// SetMessage shows msg on the message bar.
func (s *Session) SetMessage(msg string) {
	s.message = msg
	s.messageTime = s.now()
}

// Messagef formats and shows a message.
func (s *Session) Messagef(format string, args ...any) {
	s.SetMessage(fmt.Sprintf(format, args...))
}

// DispatchState returns the dispatch state owned by the session.
func (s *Session) DispatchState() *dispatcher.State {
	return &s.dispatch
}

// Modified reports whether the document has unsaved changes.
func (s *Session) Modified() bool {
	return s.eng.Modified()
}

type checkpoint struct {
	engine engine.State
	prompt *searchPrompt
}

// Checkpoint captures the document, cursor, search and prompt state.
func (s *Session) Checkpoint() any {
	cp := checkpoint{engine: s.eng.Checkpoint()}
	if s.prompt != nil {
		p := *s.prompt
		cp.prompt = &p
	}
	return cp
}

// Restore returns to a checkpoint. The cursor is clamped afterwards in
// case the checkpoint predates a change to the document's shape.
func (s *Session) Restore(v any) {
	cp, ok := v.(checkpoint)
	if !ok {
		return
	}
	s.eng.Rollback(cp.engine)
	s.prompt = cp.prompt
	s.eng.Clamp()
}
