package gapbuffer

import "fmt"

// Cursor is a snapshot of a position in the buffer. Offset is the
// logical position in code units; Line and Column are 0-indexed, with
// Column counted in code units from the line start. VisualColumn is the
// column the caret should appear in on screen; the buffer keeps it
// equal to Column, renderers may adjust it for tabs.
type Cursor struct {
	Line         int
	Column       int
	Offset       int
	VisualColumn int
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("(%d:%d@%d)", c.Line, c.Column, c.Offset)
}

// Cursor returns the current cursor position. The logical offset always
// equals the gap start.
func (b *Buffer) Cursor() Cursor {
	return b.cursor
}

// SetCursor moves the cursor to the given line and column. The line is
// clamped to [0, LineCount) and the column to the target line's length.
func (b *Buffer) SetCursor(line, column int) {
	if line < 0 {
		line = 0
	}
	if line >= b.lineCount {
		line = b.lineCount - 1
	}
	if column < 0 {
		column = 0
	}
	if length := b.lineLength(line); column > length {
		column = length
	}
	b.moveGapTo(b.positionToOffset(line, column))
	b.syncCursor()
}

// SetCursorOffset moves the cursor to a logical offset, clamped to
// [0, Len]. An offset landing between the halves of a surrogate pair
// is shifted down onto the pair's start.
func (b *Buffer) SetCursorOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	if n := b.Len(); offset > n {
		offset = n
	}
	offset = b.snapToPairStart(offset)
	b.moveGapTo(offset)
	b.syncCursor()
}

// MoveCursor moves the cursor relative to its current position. Each
// axis is clamped independently by the absolute set it delegates to.
func (b *Buffer) MoveCursor(deltaLine, deltaColumn int) {
	b.SetCursor(b.cursor.Line+deltaLine, b.cursor.Column+deltaColumn)
}

// StepCursor moves the cursor by whole characters: a surrogate pair
// counts as one step, so stepping never lands inside a pair. Steps
// past either edge clamp there.
func (b *Buffer) StepCursor(delta int) {
	off := b.gapStart
	n := b.Len()
	for ; delta > 0 && off < n; delta-- {
		if isHighSurrogate(b.unitAt(off)) && off+1 < n && isLowSurrogate(b.unitAt(off+1)) {
			off += 2
		} else {
			off++
		}
	}
	for ; delta < 0 && off > 0; delta++ {
		if off >= 2 && isLowSurrogate(b.unitAt(off-1)) && isHighSurrogate(b.unitAt(off-2)) {
			off -= 2
		} else {
			off--
		}
	}
	b.moveGapTo(off)
	b.syncCursor()
}

// CursorToStart moves the cursor to the beginning of the buffer.
func (b *Buffer) CursorToStart() {
	b.SetCursorOffset(0)
}

// CursorToEnd moves the cursor past the last code unit.
func (b *Buffer) CursorToEnd() {
	b.SetCursorOffset(b.Len())
}

// CursorToLineStart moves the cursor to column 0 of the current line.
func (b *Buffer) CursorToLineStart() {
	b.SetCursor(b.cursor.Line, 0)
}

// CursorToLineEnd moves the cursor past the last code unit of the
// current line, before its newline.
func (b *Buffer) CursorToLineEnd() {
	line := b.cursor.Line
	b.SetCursor(line, b.lineLength(line))
}

// syncCursor recomputes the cached line/column from the gap position.
// The pre-gap region is physically contiguous, so logical and physical
// indices coincide there.
func (b *Buffer) syncCursor() {
	line, column := 0, 0
	for i := 0; i < b.gapStart; i++ {
		if b.data[i] == '\n' {
			line++
			column = 0
		} else {
			column++
		}
	}
	b.cursor = Cursor{Line: line, Column: column, Offset: b.gapStart, VisualColumn: column}
}
