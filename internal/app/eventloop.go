package app

import (
	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/renderer"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/renderer/statusline"
)

// eventLoop draws a frame, blocks for the next event and handles it. Each
// event is fully applied and drawn before the next is read.
func (app *Application) eventLoop() error {
	for {
		app.draw()

		ev := app.backend.PollEvent()
		t := StartTimer()
		err := app.handleEvent(ev)
		app.metrics.RecordEvent(t.Elapsed())
		if err != nil {
			return err
		}
	}
}

// handleEvent processes one backend event.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.result(app.dispatcher.Dispatch(app.session, key.FromBackend(ev)))
	case backend.EventPaste:
		return app.result(app.dispatcher.Paste(app.session, ev.PasteText))
	case backend.EventResize:
		app.renderer.Resize(ev.Width, ev.Height)
		app.logger.Debug("resize %dx%d", ev.Width, ev.Height)
	case backend.EventInterrupt:
		if _, ok := ev.Data.(reloadRequest); ok {
			app.reload()
		}
	case backend.EventNone:
		// The screen was finalized underneath us.
		return ErrQuit
	}
	return nil
}

func (app *Application) result(res dispatcher.Result) error {
	switch res.Status {
	case dispatcher.StatusQuit:
		return ErrQuit
	case dispatcher.StatusError:
		app.logger.Warn("%s failed: %v", res.Action, res.Error)
	}
	return nil
}

// draw brings derived state up to date and renders one frame: re-tag,
// search overlay, clamp, scroll, then the frame itself.
func (app *Application) draw() {
	t := StartTimer()
	eng := app.session.Engine()

	height, width, _ := app.renderer.TextArea(eng.Buffer().LineCount(), statusline.BarCount)
	retagged := app.session.Update(height, width)

	screenW, _ := app.renderer.Size()
	cur := eng.Cursor().State()
	view := renderer.View{
		RowOffset:  cur.RowOffset,
		ColOffset:  cur.ColOffset,
		CursorLine: cur.Line,
		CursorRX:   cur.RX,
		Bars:       statusline.Bars(statusInfo(app.session.Status()), screenW, app.now()),
	}
	if sel, ok := eng.Selection(); ok {
		view.HasSelection = true
		view.SelectionStart, view.SelectionEnd = sel.Range()
	}
	app.renderer.Draw(eng.Buffer(), view)

	app.metrics.RecordRender(t.Elapsed(), retagged)
}

func statusInfo(st editor.Status) statusline.Info {
	return statusline.Info{
		Filename:    st.Filename,
		Modified:    st.Modified,
		ReadOnly:    st.ReadOnly,
		Lines:       st.Lines,
		Line:        st.Line,
		Profile:     st.Profile,
		Message:     st.Message,
		MessageTime: st.MessageTime,
	}
}

// reload re-reads the configuration and applies editor, theme, gutter,
// keymap and language options. Log settings only apply at startup. An
// invalid file keeps the running configuration.
func (app *Application) reload() {
	app.metrics.RecordReload()

	cfg, err := app.loadConfig()
	if err != nil {
		app.logger.Warn("config reload failed: %v", err)
		app.session.Messagef("Config not reloaded: %s", oneLine(err))
		return
	}
	theme, err := cfg.ResolveTheme()
	if err != nil {
		app.session.Messagef("Config not reloaded: %s", oneLine(err))
		return
	}
	km, err := cfg.ResolveKeymap()
	if err != nil {
		app.session.Messagef("Config not reloaded: %s", oneLine(err))
		return
	}
	registry, err := cfg.ResolveProfiles()
	if err != nil {
		app.logger.Warn("language profiles: %v", err)
	}

	app.cfg = cfg
	app.session.Apply(cfg.Settings())
	app.renderer.SetTheme(theme)
	app.renderer.SetOptions(cfg.RendererOptions())
	app.dispatcher.SetKeymap(km)

	app.registry = registry
	app.session.SetProfile(registry.ForFile(app.session.Filename()))

	app.logger.Info("config reloaded from %s", app.configPath)
	app.session.SetMessage("Config reloaded")
}
