// Package app wires the editor together: configuration, logging, the file
// and clipboard collaborators, one editing session and the event loop that
// drives it.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/config/watcher"
	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/renderer"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/renderer/highlight"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses config.DefaultPath.
	ConfigPath string

	// Filename is the file to edit. Empty starts an unnamed document.
	Filename string

	// Debug logs at debug level, to the default log file unless LogFile
	// or log.file is set.
	Debug bool

	// ReadOnly opens the document in read-only mode.
	ReadOnly bool

	// Overrides are command-line settings keyed by dotted path; they take
	// precedence over every other configuration source.
	Overrides map[string]any

	// Environ replaces os.Environ for configuration.
	Environ func() []string

	// Logger, Saver and Clipboard replace the default collaborators.
	Logger    *Logger
	Saver     editor.Saver
	Clipboard editor.Clipboard

	// Clock replaces time.Now.
	Clock func() time.Time

	// NoWatch disables config reloading.
	NoWatch bool
}

// Application is the running editor.
type Application struct {
	opts       Options
	configPath string
	cfg        *config.Config

	logger  *Logger
	logFile *os.File

	registry   *highlight.Registry
	session    *editor.Session
	dispatcher *dispatcher.Dispatcher

	backend  backend.Backend
	renderer *renderer.Renderer
	watcher  *watcher.Watcher
	metrics  *Metrics

	running atomic.Bool
	now     func() time.Time
}

// reloadRequest is posted to the event loop when the config file changes.
type reloadRequest struct{}

// New loads the configuration and the document and creates the session.
// An invalid configuration or an unreadable file is an error.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
		now:     opts.Clock,
	}
	if app.now == nil {
		app.now = time.Now
	}

	app.configPath = opts.ConfigPath
	if app.configPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			app.configPath = p
		}
	}

	cfg, err := app.loadConfig()
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	if err := app.initLogger(); err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	if err := app.initSession(); err != nil {
		app.closeLog()
		return nil, err
	}
	return app, nil
}

func (app *Application) loadConfig() (*config.Config, error) {
	opts := []config.Option{config.WithOverrides(app.opts.Overrides)}
	if app.opts.Environ != nil {
		opts = append(opts, config.WithEnviron(app.opts.Environ))
	}
	return config.Load(app.configPath, opts...)
}

func (app *Application) initLogger() error {
	if app.opts.Logger != nil {
		app.logger = app.opts.Logger
		return nil
	}

	level := ParseLogLevel(app.cfg.Log.Level)
	path := app.cfg.Log.File
	if app.opts.Debug {
		level = LogLevelDebug
		if path == "" {
			p, err := DefaultLogPath()
			if err != nil {
				return err
			}
			path = p
		}
	}
	if path == "" {
		app.logger = NullLogger
		return nil
	}

	f, err := OpenLogFile(path)
	if err != nil {
		return err
	}
	app.logFile = f
	app.logger = NewLogger(LoggerConfig{Level: level, Output: f, Prefix: "quill"})
	return nil
}

func (app *Application) closeLog() {
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

func (app *Application) initSession() error {
	registry, err := app.cfg.ResolveProfiles()
	app.registry = registry
	profilesErr := err

	var lines []string
	exists := false
	if name := app.opts.Filename; name != "" {
		lines, exists, err = LoadFile(name)
		if err != nil {
			return &InitError{Component: "document", Err: err}
		}
	}

	saver := app.opts.Saver
	if saver == nil {
		saver = NewFileStore(app.logger)
	}
	clip := app.opts.Clipboard
	if clip == nil {
		clip = NewSystemClipboard()
	}

	sessOpts := []editor.Option{
		editor.WithFilename(app.opts.Filename),
		editor.WithLines(lines),
		editor.WithProfile(app.registry.ForFile(app.opts.Filename)),
		editor.WithSaver(saver),
		editor.WithClipboard(clip),
		editor.WithClock(app.now),
	}
	if app.opts.ReadOnly {
		sessOpts = append(sessOpts, editor.WithReadOnly())
	}
	app.session = editor.New(app.cfg.Settings(), sessOpts...)
	app.logger = app.logger.WithSession(app.session.ID())

	km, err := app.cfg.ResolveKeymap()
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	app.dispatcher = dispatcher.New(
		dispatcher.WithKeymap(km),
		dispatcher.WithLogger(app.logger.WithComponent("dispatcher")),
		dispatcher.WithMetrics(),
	)

	app.logger.Info("session started: file=%q exists=%v lines=%d profile=%q config=%q",
		app.opts.Filename, exists, app.session.Engine().Buffer().LineCount(),
		app.session.Highlighter().Name(), app.cfg.Path())

	switch {
	case profilesErr != nil:
		app.logger.Warn("language profiles: %v", profilesErr)
		app.session.Messagef("Language profiles not loaded: %v", oneLine(profilesErr))
	case app.opts.Filename != "" && !exists:
		app.session.SetMessage("New file")
	default:
		app.session.SetMessage(app.helpMessage())
	}
	return nil
}

func (app *Application) helpMessage() string {
	km := app.dispatcher.Keymap()
	name := func(a dispatcher.Action) string {
		keys := km.KeysFor(dispatcher.ContextEditing, a)
		if len(keys) == 0 {
			return "-"
		}
		return strings.ReplaceAll(keys[0].String(), "+", "-")
	}
	return fmt.Sprintf("HELP: %s = save | %s = quit | %s = find",
		name(dispatcher.ActionSave), name(dispatcher.ActionQuit), name(dispatcher.ActionSearchBegin))
}

// SetBackend sets the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and runs the event loop until the session
// quits. It returns nil on a normal quit.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.shutdown()

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	theme, err := app.cfg.ResolveTheme()
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	app.renderer = renderer.New(app.backend, theme, app.cfg.RendererOptions())
	app.startWatcher()
	// Runs before the backend shuts down so no reload is posted to a
	// finalized screen.
	defer app.stopWatcher()

	err = app.eventLoop()
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// Stop asks a running event loop to quit without saving. It is safe to
// call from another goroutine.
func (app *Application) Stop() {
	if app.running.Load() && app.backend != nil {
		app.backend.PostEvent(backend.Event{Type: backend.EventNone})
	}
}

// startWatcher watches the config file. Failures only disable reloading.
func (app *Application) startWatcher() {
	if app.opts.NoWatch || app.configPath == "" {
		return
	}
	if _, err := os.Stat(filepath.Dir(app.configPath)); err != nil {
		app.logger.Debug("config watch disabled: %v", err)
		return
	}
	b := app.backend
	w, err := config.Watch(app.configPath,
		func() { b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: reloadRequest{}}) },
		func(err error) { app.logger.Warn("config watcher: %v", err) },
	)
	if err != nil {
		app.logger.Warn("config watch disabled: %v", err)
		return
	}
	app.watcher = w
	app.logger.Debug("watching %s", app.configPath)
}

func (app *Application) stopWatcher() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
}

func (app *Application) shutdown() {
	app.stopWatcher()

	app.logger.Info("session ended: %s", app.metrics.Snapshot())
	if dm := app.dispatcher.Metrics(); dm != nil {
		app.logger.Info("dispatch: total=%d errors=%d panics=%d avg=%s",
			dm.TotalDispatches(), dm.TotalErrors(), dm.TotalPanics(), dm.AverageDuration())
		for _, am := range dm.TopActions(5) {
			app.logger.Debug("action %s: count=%d errors=%d avg=%s max=%s",
				am.Action, am.DispatchCount, am.ErrorCount, am.AverageDuration(), am.MaxDuration)
		}
	}
	app.closeLog()
}

// IsRunning returns true while Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Session returns the editing session.
func (app *Application) Session() *editor.Session {
	return app.session
}

// Dispatcher returns the key dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Renderer returns the renderer, nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Metrics returns the event loop metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the session logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// oneLine joins a multi-line error message for the message bar.
func oneLine(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
