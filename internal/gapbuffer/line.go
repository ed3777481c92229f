package gapbuffer

// Direction is the layout hint for a line of text. It is a heuristic
// script classification, not a bidirectional-algorithm result: it tells
// the renderer which way to align a line, it never reorders content.
type Direction uint8

const (
	DirectionAuto Direction = iota // mixed scripts or neither
	DirectionLTR                   // Latin-only content
	DirectionRTL                   // Arabic/Hebrew-only content
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "ltr"
	case DirectionRTL:
		return "rtl"
	default:
		return "auto"
	}
}

// LineInfo describes one line of the buffer.
type LineInfo struct {
	Start     int // logical offset of the first code unit
	Length    int // code units, excluding the trailing newline
	Direction Direction
	HasRTL    bool
	HasLTR    bool
}

// LineInfo returns position and direction information for a line.
// Returns ErrInvalidPosition if the line index is out of range.
func (b *Buffer) LineInfo(line int) (LineInfo, error) {
	if line < 0 || line >= b.lineCount {
		return LineInfo{}, ErrInvalidPosition
	}

	info := LineInfo{
		Start:  b.lineStartOffset(line),
		Length: b.lineLength(line),
	}
	for i := info.Start; i < info.Start+info.Length; i++ {
		u := b.unitAt(i)
		if isRTLUnit(u) {
			info.HasRTL = true
		} else if isLTRUnit(u) {
			info.HasLTR = true
		}
	}
	switch {
	case info.HasRTL && !info.HasLTR:
		info.Direction = DirectionRTL
	case info.HasLTR && !info.HasRTL:
		info.Direction = DirectionLTR
	default:
		info.Direction = DirectionAuto
	}
	return info, nil
}

// Line returns the text of a line without its trailing newline.
func (b *Buffer) Line(line int) (string, error) {
	if line < 0 || line >= b.lineCount {
		return "", ErrInvalidPosition
	}
	start := b.lineStartOffset(line)
	return decodeUnits(b.copyRange(start, start+b.lineLength(line))), nil
}

// lineStartOffset finds the logical offset of a line's first unit by
// scanning newlines from the start of the content. O(offset).
func (b *Buffer) lineStartOffset(line int) int {
	if line <= 0 {
		return 0
	}
	seen := 0
	n := b.Len()
	for i := 0; i < n; i++ {
		if b.unitAt(i) == '\n' {
			seen++
			if seen == line {
				return i + 1
			}
		}
	}
	return n
}

// lineLength measures a line in code units, excluding the newline.
func (b *Buffer) lineLength(line int) int {
	start := b.lineStartOffset(line)
	n := b.Len()
	for i := start; i < n; i++ {
		if b.unitAt(i) == '\n' {
			return i - start
		}
	}
	return n - start
}

// positionToOffset converts a line/column pair to a logical offset.
// The caller is expected to have clamped both coordinates.
func (b *Buffer) positionToOffset(line, column int) int {
	return b.lineStartOffset(line) + column
}

// offsetToPosition converts a logical offset to line/column by walking
// from the start counting newlines.
func (b *Buffer) offsetToPosition(offset int) (line, column int) {
	for i := 0; i < offset; i++ {
		if b.unitAt(i) == '\n' {
			line++
			column = 0
		} else {
			column++
		}
	}
	return line, column
}

// isRTLUnit reports whether a code unit belongs to an Arabic or Hebrew
// block. Surrogate halves are never classified.
func isRTLUnit(u uint16) bool {
	switch {
	case u >= 0x0590 && u <= 0x05FF: // Hebrew
		return true
	case u >= 0x0600 && u <= 0x06FF: // Arabic
		return true
	case u >= 0x0750 && u <= 0x077F: // Arabic Supplement
		return true
	case u >= 0x08A0 && u <= 0x08FF: // Arabic Extended-A
		return true
	case u >= 0xFB50 && u <= 0xFDFF: // Arabic Presentation Forms-A
		return true
	case u >= 0xFE70 && u <= 0xFEFF: // Arabic Presentation Forms-B
		return true
	}
	return false
}

// isLTRUnit reports whether a code unit is an ASCII letter.
func isLTRUnit(u uint16) bool {
	return (u >= 'A' && u <= 'Z') || (u >= 'a' && u <= 'z')
}
