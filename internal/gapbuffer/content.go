package gapbuffer

// Content returns the full logical content as a UTF-8 string.
func (b *Buffer) Content() string {
	return decodeUnits(b.copyRange(0, b.Len()))
}

// Range returns the text in the logical span [start, end). Reversed
// bounds are swapped, not rejected; bounds outside the content return
// ErrInvalidRange.
func (b *Buffer) Range(start, end int) (string, error) {
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > b.Len() {
		return "", ErrInvalidRange
	}
	return decodeUnits(b.copyRange(start, end)), nil
}

// Stats is a read-only snapshot of buffer metrics.
type Stats struct {
	SizeBytes int // UTF-8 byte length of the content
	Length    int // content length in code units
	LineCount int
	GapSize   int // current gap size in code units
	Capacity  int // total storage in code units
	Modified  bool
	ReadOnly  bool
}

// Stats reports current buffer metrics. No side effects.
func (b *Buffer) Stats() Stats {
	return Stats{
		SizeBytes: encodedByteLen(b.copyRange(0, b.Len())),
		Length:    b.Len(),
		LineCount: b.lineCount,
		GapSize:   b.gapEnd - b.gapStart,
		Capacity:  len(b.data),
		Modified:  b.modified,
		ReadOnly:  b.readonly,
	}
}
