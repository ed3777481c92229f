package gapbuffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithReadOnly marks the buffer read-only at creation time.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readonly = true
	}
}

// WithPath associates a file path without loading from it. Used for
// save-as-new workflows where the file does not exist yet.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}
