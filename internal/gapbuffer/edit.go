package gapbuffer

// Insert writes text at the current cursor position. Inserting the
// empty string is a no-op. The text must be valid UTF-8.
func (b *Buffer) Insert(s string) error {
	if b.readonly {
		return ErrReadOnly
	}
	if s == "" {
		return nil
	}

	units, err := encodeUnits(s)
	if err != nil {
		return err
	}
	if err := b.ensureGapSize(len(units)); err != nil {
		return err
	}

	copy(b.data[b.gapStart:], units)
	b.gapStart += len(units)
	b.lineCount += countNewlines(units)
	b.modified = true
	b.syncCursor()
	return nil
}

// InsertAt moves the cursor to the given logical offset and inserts
// there. Unlike cursor movement, an offset beyond the content is an
// error rather than being clamped. An offset that would land between
// the halves of a surrogate pair is shifted down onto the pair's start.
func (b *Buffer) InsertAt(offset int, s string) error {
	if b.readonly {
		return ErrReadOnly
	}
	if offset < 0 || offset > b.Len() {
		return ErrInvalidPosition
	}
	if s == "" {
		return nil
	}
	offset = b.snapToPairStart(offset)
	b.moveGapTo(offset)
	b.syncCursor()
	return b.Insert(s)
}

// Delete removes code units relative to the cursor: count > 0 deletes
// forward, count < 0 deletes backward, count == 0 is a no-op. The span
// is clamped to the content available on that side; deleting past an
// edge silently truncates. If the far boundary of the span would split
// a surrogate pair, the span is extended by one unit to swallow the
// pair whole.
func (b *Buffer) Delete(count int) error {
	if b.readonly {
		return ErrReadOnly
	}
	if count == 0 {
		return nil
	}

	var removed []uint16
	if count > 0 {
		avail := b.Len() - b.gapStart
		if count > avail {
			count = avail
		}
		if count == 0 {
			return nil
		}
		last := b.data[b.gapEnd+count-1]
		if isHighSurrogate(last) && count < avail && isLowSurrogate(b.data[b.gapEnd+count]) {
			count++
		}
		removed = b.data[b.gapEnd : b.gapEnd+count]
		b.gapEnd += count
	} else {
		count = -count
		if count > b.gapStart {
			count = b.gapStart
		}
		if count == 0 {
			return nil
		}
		first := b.data[b.gapStart-count]
		if isLowSurrogate(first) && count < b.gapStart && isHighSurrogate(b.data[b.gapStart-count-1]) {
			count++
		}
		removed = b.data[b.gapStart-count : b.gapStart]
		b.gapStart -= count
	}

	b.lineCount -= countNewlines(removed)
	if b.lineCount < 1 {
		b.lineCount = 1
	}
	b.modified = true
	b.syncCursor()
	return nil
}

// DeleteRange removes the logical span [start, end). Reversed bounds
// are swapped and both are clamped to the content length. Boundaries
// that would split a surrogate pair are widened outward to cover the
// pair.
func (b *Buffer) DeleteRange(start, end int) error {
	if b.readonly {
		return ErrReadOnly
	}
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	n := b.Len()
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if start == end {
		return nil
	}

	start = b.snapToPairStart(start)
	if end < b.Len() && isLowSurrogate(b.unitAt(end)) && isHighSurrogate(b.unitAt(end-1)) {
		end++
	}

	b.moveGapTo(start)
	removed := b.data[b.gapEnd : b.gapEnd+(end-start)]
	b.lineCount -= countNewlines(removed)
	if b.lineCount < 1 {
		b.lineCount = 1
	}
	b.gapEnd += end - start
	b.modified = true
	b.syncCursor()
	return nil
}

// Replace deletes [start, end) and inserts the replacement text at
// start. The two halves are not atomic: if the insert fails after the
// delete committed (encoding error, size ceiling), the buffer is left
// with the range deleted and nothing re-inserted, and the error is
// returned. Callers needing all-or-nothing semantics should validate
// the replacement text first.
func (b *Buffer) Replace(start, end int, s string) error {
	if b.readonly {
		return ErrReadOnly
	}
	if start > end {
		start, end = end, start
	}
	if err := b.DeleteRange(start, end); err != nil {
		return err
	}
	if start < 0 {
		start = 0
	}
	if start > b.Len() {
		start = b.Len()
	}
	return b.InsertAt(start, s)
}

// snapToPairStart moves an offset down one unit when it sits between a
// high surrogate and its matching low surrogate, so no logical position
// ever splits a pair.
func (b *Buffer) snapToPairStart(offset int) int {
	if offset > 0 && offset < b.Len() &&
		isLowSurrogate(b.unitAt(offset)) && isHighSurrogate(b.unitAt(offset-1)) {
		return offset - 1
	}
	return offset
}
