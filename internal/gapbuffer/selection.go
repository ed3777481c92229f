package gapbuffer

// Selection is a pair of cursor snapshots plus an active flag. Start
// and End are independent of the gap position and are not required to
// be ordered; retrieval normalizes. The Rectangular flag is carried in
// the data model but extraction treats every selection as a linear
// range.
type Selection struct {
	Start       Cursor
	End         Cursor
	Active      bool
	Rectangular bool
}

// SetSelection sets the selection endpoints by line/column. Each
// endpoint is clamped against current line and column bounds exactly
// as SetCursor clamps, without moving the gap. Start may come after
// End; SelectedText normalizes the order.
func (b *Buffer) SetSelection(startLine, startColumn, endLine, endColumn int, rectangular bool) {
	b.selection = Selection{
		Start:       b.clampedCursor(startLine, startColumn),
		End:         b.clampedCursor(endLine, endColumn),
		Active:      true,
		Rectangular: rectangular,
	}
}

// Selection returns the current selection state.
func (b *Buffer) Selection() Selection {
	return b.selection
}

// ClearSelection deactivates and zeroes the selection.
func (b *Buffer) ClearSelection() {
	b.selection = Selection{}
}

// SelectedText returns the text covered by the active selection, with
// the endpoints normalized so start <= end. An inactive selection
// yields the empty string, not an error. Offsets that edits have pushed
// past the end of content are clamped.
func (b *Buffer) SelectedText() (string, error) {
	if !b.selection.Active {
		return "", nil
	}
	start, end := b.selection.Start.Offset, b.selection.End.Offset
	if start > end {
		start, end = end, start
	}
	if n := b.Len(); end > n {
		end = n
		if start > n {
			start = n
		}
	}
	return b.Range(start, end)
}

// clampedCursor builds a cursor snapshot for a line/column pair after
// clamping both coordinates, without touching the gap.
func (b *Buffer) clampedCursor(line, column int) Cursor {
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
	return Cursor{
		Line:         line,
		Column:       column,
		Offset:       b.positionToOffset(line, column),
		VisualColumn: column,
	}
}
