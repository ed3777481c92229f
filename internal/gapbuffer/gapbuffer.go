package gapbuffer

// Storage constants. Capacities and gap sizes are counted in UTF-16 code
// units, not bytes.
const (
	initialCapacity = 4096
	initialGapSize  = 2048
	growthIncrement = 2048

	// maxCapacity caps buffer growth at 100 MB of UTF-16 storage.
	maxCapacity = 100 * 1024 * 1024 / 2
)

// Buffer is a gap-buffer text store. The logical content is
// data[0:gapStart] followed by data[gapEnd:]; the half-open range
// [gapStart, gapEnd) is the gap and holds no valid content.
//
// A Buffer has exactly one owner and must not be shared across
// goroutines without external synchronization.
type Buffer struct {
	data     []uint16
	gapStart int
	gapEnd   int

	cursor    Cursor
	lineCount int

	selection Selection

	modified bool
	readonly bool
	path     string
}

// New creates an empty buffer with the default capacity.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		data:      make([]uint16, initialCapacity),
		gapStart:  0,
		gapEnd:    initialCapacity,
		lineCount: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewWithCapacity creates an empty buffer with at least the requested
// capacity in code units.
func NewWithCapacity(capacity int, opts ...Option) (*Buffer, error) {
	if capacity > maxCapacity {
		return nil, ErrOutOfMemory
	}
	if capacity < initialCapacity {
		capacity = initialCapacity
	}
	b := &Buffer{
		data:      make([]uint16, capacity),
		gapStart:  0,
		gapEnd:    capacity,
		lineCount: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// NewFromString creates a buffer holding the given text. The text must
// be valid UTF-8.
func NewFromString(s string, opts ...Option) (*Buffer, error) {
	units, err := encodeUnits(s)
	if err != nil {
		return nil, err
	}
	capacity := len(units) + initialGapSize
	if capacity < initialCapacity {
		capacity = initialCapacity
	}
	if len(units) > maxCapacity {
		return nil, ErrOutOfMemory
	}
	if capacity > maxCapacity {
		capacity = maxCapacity
	}

	b := &Buffer{
		data:      make([]uint16, capacity),
		lineCount: 1,
	}
	copy(b.data, units)
	b.gapStart = len(units)
	b.gapEnd = capacity
	b.lineCount += countNewlines(units)
	b.syncCursor()

	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Len returns the logical content length in code units.
func (b *Buffer) Len() int {
	return len(b.data) - (b.gapEnd - b.gapStart)
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return b.lineCount
}

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool {
	return b.modified
}

// ClearModified resets the modified flag, e.g. after an external save.
func (b *Buffer) ClearModified() {
	b.modified = false
}

// ReadOnly reports whether the buffer rejects edits.
func (b *Buffer) ReadOnly() bool {
	return b.readonly
}

// SetReadOnly toggles the read-only flag.
func (b *Buffer) SetReadOnly(readonly bool) {
	b.readonly = readonly
}

// Path returns the associated file path, or "" for a scratch buffer.
func (b *Buffer) Path() string {
	return b.path
}

// unitAt returns the code unit at a logical position. The caller must
// ensure 0 <= pos < Len().
func (b *Buffer) unitAt(pos int) uint16 {
	if pos < b.gapStart {
		return b.data[pos]
	}
	return b.data[pos+(b.gapEnd-b.gapStart)]
}

// copyRange assembles the logical span [start, end) into a contiguous
// slice. The caller must ensure 0 <= start <= end <= Len().
func (b *Buffer) copyRange(start, end int) []uint16 {
	out := make([]uint16, 0, end-start)
	if start < b.gapStart {
		to := end
		if to > b.gapStart {
			to = b.gapStart
		}
		out = append(out, b.data[start:to]...)
	}
	if end > b.gapStart {
		from := start
		if from < b.gapStart {
			from = b.gapStart
		}
		gap := b.gapEnd - b.gapStart
		out = append(out, b.data[from+gap:end+gap]...)
	}
	return out
}

func countNewlines(units []uint16) int {
	n := 0
	for _, u := range units {
		if u == '\n' {
			n++
		}
	}
	return n
}
