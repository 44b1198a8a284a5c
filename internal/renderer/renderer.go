package renderer

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/renderer/backend"
	"github.com/dshills/quill/internal/renderer/core"
	"github.com/dshills/quill/internal/renderer/highlight"
)

// Document provides read access to the lines being drawn.
type Document interface {
	LineCount() int
	Line(i int) *buffer.Line
}

// Bar is a pre-formatted line drawn below the text area.
type Bar struct {
	Text    string
	Inverse bool
}

// View describes what to draw: scroll offsets, cursor, selection and bars.
type View struct {
	RowOffset int
	ColOffset int

	// CursorLine and CursorRX locate the cursor in document coordinates;
	// CursorRX is a screen column within the line.
	CursorLine int
	CursorRX   int

	// Selection is drawn when HasSelection is set; End is exclusive.
	HasSelection   bool
	SelectionStart buffer.Position
	SelectionEnd   buffer.Position

	Bars []Bar
}

// Options configures the renderer.
type Options struct {
	ShowLineNumbers bool // Show line numbers in gutter
	GutterWidth     int  // Gutter columns including separator (0 = auto)
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{}
}

// Renderer composes frames and writes them to a backend.
type Renderer struct {
	backend backend.Backend
	theme   *highlight.Theme
	opts    Options

	width  int
	height int

	frameCount uint64
}

// New creates a new renderer with the given backend and options. A nil
// theme uses highlight.DefaultTheme.
func New(b backend.Backend, theme *highlight.Theme, opts Options) *Renderer {
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	width, height := b.Size()
	return &Renderer{
		backend: b,
		theme:   theme,
		opts:    opts,
		width:   width,
		height:  height,
	}
}

// SetTheme replaces the color theme.
func (r *Renderer) SetTheme(theme *highlight.Theme) {
	if theme != nil {
		r.theme = theme
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() *highlight.Theme {
	return r.theme
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetOptions updates the renderer options.
func (r *Renderer) SetOptions(opts Options) {
	r.opts = opts
}

// Resize handles terminal resize events.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Size returns the current screen dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// FrameCount returns the number of frames flushed.
func (r *Renderer) FrameCount() uint64 {
	return r.frameCount
}

// TextArea returns the size of the document area and the gutter width for
// a document of lineCount lines with bars rows reserved at the bottom.
func (r *Renderer) TextArea(lineCount, bars int) (height, width, gutter int) {
	height = max(r.height-bars, 0)
	gutter = r.gutterWidth(lineCount)
	if gutter >= r.width {
		gutter = 0
	}
	width = max(r.width-gutter, 0)
	return height, width, gutter
}

// Draw builds a frame and flushes it.
func (r *Renderer) Draw(doc Document, view View) *Frame {
	f := r.Build(doc, view)
	r.Flush(f)
	return f
}

// Build composes a full frame without touching the backend.
func (r *Renderer) Build(doc Document, view View) *Frame {
	textH, textW, gutter := r.TextArea(doc.LineCount(), len(view.Bars))
	f := &Frame{
		Width:  r.width,
		Height: r.height,
		Rows:   make([]Row, 0, r.height),
	}
	normal := r.theme.StyleFor(buffer.TagNormal)

	for y := 0; y < textH; y++ {
		var b rowBuilder
		idx := view.RowOffset + y
		if gutter > 0 {
			r.drawGutter(&b, idx, doc.LineCount(), gutter)
		}
		if idx >= 0 && idx < doc.LineCount() {
			r.drawLine(&b, doc.Line(idx), idx, view, textW)
		}
		b.pad(r.width, normal)
		f.Rows = append(f.Rows, b.row)
	}

	for i := 0; i < len(view.Bars) && textH+i < r.height; i++ {
		var b rowBuilder
		st := core.DefaultStyle()
		if view.Bars[i].Inverse {
			st = st.Reverse()
		}
		b.text(view.Bars[i].Text, st, r.width)
		b.pad(r.width, st)
		f.Rows = append(f.Rows, b.row)
	}

	cy := view.CursorLine - view.RowOffset
	cx := view.CursorRX - view.ColOffset
	if cy >= 0 && cy < textH && cx >= 0 && cx < textW {
		f.CursorX = gutter + cx
		f.CursorY = cy
		f.CursorVisible = true
	}
	return f
}

func (r *Renderer) drawGutter(b *rowBuilder, idx, lineCount, gutter int) {
	st := r.theme.GutterStyle()
	if idx >= 0 && idx < lineCount {
		b.text(formatLineNumber(idx+1, gutter-1), st, gutter-1)
	}
	b.pad(gutter, st)
}

// drawLine emits the part of l between the column offset and the right
// edge. A wide glyph cut by either edge is replaced by spaces.
func (r *Renderer) drawLine(b *rowBuilder, l *buffer.Line, idx int, view View, textW int) {
	render := l.Render()
	tags := l.Tags()
	left := view.ColOffset
	right := view.ColOffset + textW

	selStart, selEnd := -1, -1
	if view.HasSelection && idx >= view.SelectionStart.Line && idx <= view.SelectionEnd.Line {
		selStart, selEnd = 0, len(render)
		if idx == view.SelectionStart.Line {
			selStart = l.RenderIndex(view.SelectionStart.Col)
		}
		if idx == view.SelectionEnd.Line {
			selEnd = l.RenderIndex(view.SelectionEnd.Col)
		}
	}

	placed := -1
	for i, ch := range render {
		col := l.CellAt(i)
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			if placed == i-1 && placed >= 0 {
				b.combine(ch)
				placed = i
			}
			continue
		}
		if col+w <= left {
			continue
		}
		if col >= right {
			break
		}

		tag := buffer.TagNormal
		if i < len(tags) {
			tag = tags[i]
		}
		if i >= selStart && i < selEnd {
			tag = buffer.TagSelection
		}
		st := r.theme.StyleFor(tag)

		if col < left || col+w > right {
			for c := max(col, left); c < min(col+w, right); c++ {
				b.put(Glyph{Rune: ' ', Width: 1}, st)
			}
			continue
		}
		b.put(Glyph{Rune: ch, Width: w}, st)
		placed = i
	}
}

// Flush writes a frame to the backend, positions the cursor last and
// shows the result with a single Show call.
func (r *Renderer) Flush(f *Frame) {
	for y, row := range f.Rows {
		for _, run := range row.Runs {
			x := run.X
			for _, g := range run.Glyphs {
				r.backend.SetCell(x, y, core.Cell{
					Rune:      g.Rune,
					Combining: g.Combining,
					Width:     g.Width,
					Style:     run.Style,
				})
				x += g.Width
			}
		}
	}

	if f.CursorVisible {
		r.backend.ShowCursor(f.CursorX, f.CursorY)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
	r.frameCount++
}
