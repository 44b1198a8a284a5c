package buffer

// DefaultTabSize is the tab stop width used when none is configured.
const DefaultTabSize = 8

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithTabSize sets the number of columns per tab stop.
func WithTabSize(size int) Option {
	return func(b *Buffer) {
		if size > 0 {
			b.tabSize = size
		}
	}
}

// WithLines sets the initial content. An empty slice yields one blank line.
func WithLines(lines []string) Option {
	return func(b *Buffer) {
		b.initial = lines
	}
}
