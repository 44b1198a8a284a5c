package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/quill/internal/renderer/backend"
)

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) ReadText() (string, error) { return c.text, nil }

func (c *fakeClipboard) WriteText(text string) error {
	c.text = text
	return nil
}

type harness struct {
	dir     string
	config  string
	backend *backend.NullBackend
	app     *Application
}

func newHarness(t *testing.T, filename, content string) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		dir:     dir,
		config:  filepath.Join(dir, "config.toml"),
		backend: backend.NewNullBackend(60, 12),
	}

	path := ""
	if filename != "" {
		path = filepath.Join(dir, filename)
		if content != "" {
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	app, err := New(Options{
		ConfigPath: h.config,
		Filename:   path,
		Environ:    func() []string { return nil },
		Logger:     NullLogger,
		Clipboard:  &fakeClipboard{},
		Clock:      func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
		NoWatch:    true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := app.SetBackend(h.backend); err != nil {
		t.Fatal(err)
	}
	h.app = app
	return h
}

func (h *harness) post(events ...backend.Event) {
	for _, ev := range events {
		h.backend.PostEvent(ev)
	}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.post(backend.RuneEvent(r))
	}
}

func (h *harness) run(t *testing.T) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- h.app.Run() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("event loop did not quit")
	}
}

func (h *harness) screen() string {
	_, height := h.backend.Size()
	rows := make([]string, height)
	for y := range rows {
		rows[y] = h.backend.RowText(y)
	}
	return strings.Join(rows, "\n")
}

func TestRunWithoutBackend(t *testing.T) {
	app, err := New(Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Environ:    func() []string { return nil },
		Logger:     NullLogger,
		NoWatch:    true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestStartupMessages(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     string
	}{
		{"unnamed", "", "", "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"},
		{"existing file", "a.txt", "hello\n", "HELP:"},
		{"new file", "new.txt", "", "New file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.filename, tt.content)
			if msg := h.app.Session().Message(); !strings.HasPrefix(msg, tt.want) {
				t.Errorf("expected message starting with %q, got %q", tt.want, msg)
			}
		})
	}
}

func TestInvalidConfigFailsStartup(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte("[editor]\ntab_size = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(Options{ConfigPath: cfg, Environ: func() []string { return nil }, Logger: NullLogger})

	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "config" {
		t.Fatalf("expected a config InitError, got %v", err)
	}
}

func TestEditSaveQuit(t *testing.T) {
	h := newHarness(t, "main.go", "package main\n")
	h.post(backend.KeyEvent(backend.KeyEnd, backend.ModNone), backend.KeyEvent(backend.KeyEnter, backend.ModNone))
	h.typeText("// hi")
	h.post(backend.CtrlEvent('s'), backend.CtrlEvent('q'))
	h.run(t)

	data, err := os.ReadFile(filepath.Join(h.dir, "main.go"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "package main\n// hi\n" {
		t.Errorf("expected saved text, got %q", data)
	}
	if h.app.Session().Modified() {
		t.Error("document should be clean after save")
	}
	if h.app.IsRunning() {
		t.Error("application should not be running after Run returns")
	}
}

func TestDirtyQuitNeedsConfirmation(t *testing.T) {
	h := newHarness(t, "notes.txt", "a\n")
	h.typeText("x")
	h.post(backend.CtrlEvent('q'), backend.CtrlEvent('q'), backend.CtrlEvent('q'))
	h.run(t)

	if got := h.app.Metrics().Snapshot().EventCount; got != 4 {
		t.Errorf("expected 4 events handled, got %d", got)
	}
	data, _ := os.ReadFile(filepath.Join(h.dir, "notes.txt"))
	if string(data) != "a\n" {
		t.Errorf("quit without save changed the file: %q", data)
	}
}

func TestFrameShowsDocumentAndStatus(t *testing.T) {
	h := newHarness(t, "hello.txt", "hello world\n")
	h.typeText("!")
	h.post(backend.CtrlEvent('q'), backend.CtrlEvent('q'), backend.CtrlEvent('q'))
	h.run(t)

	screen := h.screen()
	if !strings.Contains(screen, "!hello world") {
		t.Errorf("expected the edited line on screen:\n%s", screen)
	}
	if !strings.Contains(screen, "1 lines (modified)") {
		t.Errorf("expected the status bar on screen:\n%s", screen)
	}
	if s := h.app.Metrics().Snapshot(); s.RenderCount < 2 {
		t.Errorf("expected a frame per event, got %d", s.RenderCount)
	}
}

func TestPasteEvent(t *testing.T) {
	h := newHarness(t, "p.txt", "")
	h.post(backend.Event{Type: backend.EventPaste, PasteText: "one\r\ntwo"})
	h.post(backend.CtrlEvent('q'), backend.CtrlEvent('q'), backend.CtrlEvent('q'))
	h.run(t)

	if got := h.app.Session().Engine().Text(); got != "one\ntwo" {
		t.Errorf("expected %q, got %q", "one\ntwo", got)
	}
}

func TestResizeEvent(t *testing.T) {
	h := newHarness(t, "", "")
	h.backend.Resize(40, 8)
	h.post(backend.CtrlEvent('q'))
	h.run(t)

	w, height := h.app.Renderer().Size()
	if w != 40 || height != 8 {
		t.Errorf("expected 40x8, got %dx%d", w, height)
	}
}

func TestReloadAppliesConfig(t *testing.T) {
	h := newHarness(t, "x.txt", "x\n")
	if err := os.WriteFile(h.config, []byte("[editor]\ntab_size = 8\nquit_times = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.post(backend.Event{Type: backend.EventInterrupt, Data: reloadRequest{}})
	h.typeText("y")
	// One press quits a dirty document after the reload.
	h.post(backend.CtrlEvent('q'))
	h.run(t)

	st := h.app.Session().Settings()
	if st.TabSize != 8 || st.QuitTimes != 1 {
		t.Errorf("expected reloaded settings, got %+v", st)
	}
	if got := h.app.Metrics().Snapshot().Reloads; got != 1 {
		t.Errorf("expected 1 reload, got %d", got)
	}
	if h.app.Config().Editor.TabSize != 8 {
		t.Error("config should be replaced")
	}
}

func TestReloadKeepsConfigOnError(t *testing.T) {
	h := newHarness(t, "", "")
	if err := os.WriteFile(h.config, []byte("[editor]\ntab_size = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.post(backend.Event{Type: backend.EventInterrupt, Data: reloadRequest{}})
	h.post(backend.CtrlEvent('q'))
	h.run(t)

	if got := h.app.Session().Settings().TabSize; got != 4 {
		t.Errorf("expected tab size 4 kept, got %d", got)
	}
	if msg := h.app.Session().Message(); !strings.HasPrefix(msg, "Config not reloaded") {
		t.Errorf("expected a reload error message, got %q", msg)
	}
}

func TestUnrelatedInterruptIgnored(t *testing.T) {
	h := newHarness(t, "", "")
	h.post(backend.Event{Type: backend.EventInterrupt, Data: "other"})
	h.post(backend.CtrlEvent('q'))
	h.run(t)

	if got := h.app.Metrics().Snapshot().Reloads; got != 0 {
		t.Errorf("expected no reload, got %d", got)
	}
}

// shutdownBackend records whether the config watcher was still running when
// the backend shut down.
type shutdownBackend struct {
	*backend.NullBackend
	app            *Application
	watchingInLoop bool
	watchingAtStop bool
}

func (b *shutdownBackend) PollEvent() backend.Event {
	b.watchingInLoop = b.app.watcher != nil
	return b.NullBackend.PollEvent()
}

func (b *shutdownBackend) Shutdown() {
	b.watchingAtStop = b.app.watcher != nil
	b.NullBackend.Shutdown()
}

func TestWatcherStopsBeforeBackend(t *testing.T) {
	dir := t.TempDir()
	app, err := New(Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		Environ:    func() []string { return nil },
		Logger:     NullLogger,
		Clipboard:  &fakeClipboard{},
	})
	if err != nil {
		t.Fatal(err)
	}
	b := &shutdownBackend{NullBackend: backend.NewNullBackend(40, 10), app: app}
	if err := app.SetBackend(b); err != nil {
		t.Fatal(err)
	}
	b.PostEvent(backend.CtrlEvent('q'))
	if err := app.Run(); err != nil {
		t.Fatal(err)
	}
	if !b.watchingInLoop {
		t.Fatal("expected the config watcher to run during the loop")
	}
	if b.watchingAtStop {
		t.Error("config watcher still running when the backend shut down")
	}
}

func TestNoneEventQuits(t *testing.T) {
	h := newHarness(t, "", "")
	h.post(backend.Event{Type: backend.EventNone})
	h.run(t)
}
