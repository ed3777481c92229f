package gapbuffer

import (
	"fmt"
	"os"
)

// NewFromFile creates a buffer by reading an entire file. The file must
// contain valid UTF-8. The returned buffer remembers the path and is
// not marked modified.
func NewFromFile(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	b, err := NewFromString(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	b.path = path
	b.modified = false
	return b, nil
}

// Load replaces the buffer's content with a file's content. A fresh
// buffer is built first and its storage swapped in, so a read or decode
// failure leaves the receiver untouched. Cursor and selection reset to
// the start.
func (b *Buffer) Load(path string) error {
	loaded, err := NewFromFile(path)
	if err != nil {
		return err
	}

	b.data = loaded.data
	b.gapStart = loaded.gapStart
	b.gapEnd = loaded.gapEnd
	b.lineCount = loaded.lineCount
	b.path = path
	b.modified = false
	b.selection = Selection{}
	b.moveGapTo(0)
	b.syncCursor()
	return nil
}

// Save writes the content to the buffer's associated path. Returns
// ErrNoPath for a scratch buffer.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoPath
	}
	return b.SaveAs(b.path)
}

// SaveAs encodes the whole content and writes it to path verbatim,
// then remembers the path and clears the modified flag.
func (b *Buffer) SaveAs(path string) error {
	if err := os.WriteFile(path, []byte(b.Content()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	b.path = path
	b.modified = false
	return nil
}
