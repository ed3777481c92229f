package gapbuffer

// moveGapTo relocates the gap so that gapStart == pos. Content between
// the old and new positions is shifted across the gap in a single block
// move, so the cost is O(distance). Repeated edits at the same logical
// point pay this cost once.
func (b *Buffer) moveGapTo(pos int) {
	if pos == b.gapStart {
		return
	}
	gap := b.gapEnd - b.gapStart
	if pos < b.gapStart {
		// Shift [pos, gapStart) rightward into the gap's tail.
		n := b.gapStart - pos
		copy(b.data[b.gapEnd-n:b.gapEnd], b.data[pos:b.gapStart])
	} else {
		// Shift the span after the gap leftward into the gap's head.
		n := pos - b.gapStart
		copy(b.data[b.gapStart:b.gapStart+n], b.data[b.gapEnd:b.gapEnd+n])
	}
	b.gapStart = pos
	b.gapEnd = pos + gap
}

// ensureGapSize grows the storage array if the gap cannot absorb
// `needed` more code units. New capacity is the larger of twice the
// current capacity and content+needed+growthIncrement, capped at
// maxCapacity. Returns ErrOutOfMemory when even the minimum requirement
// exceeds the cap; the buffer is left untouched in that case.
func (b *Buffer) ensureGapSize(needed int) error {
	if b.gapEnd-b.gapStart >= needed {
		return nil
	}

	content := b.Len()
	if content+needed > maxCapacity {
		return ErrOutOfMemory
	}

	newCap := 2 * len(b.data)
	if minCap := content + needed + growthIncrement; newCap < minCap {
		newCap = minCap
	}
	if newCap > maxCapacity {
		newCap = maxCapacity
	}

	// Pre-gap span goes to the front of the new array, post-gap span to
	// the back, leaving one large gap in the middle.
	data := make([]uint16, newCap)
	copy(data, b.data[:b.gapStart])
	tail := len(b.data) - b.gapEnd
	copy(data[newCap-tail:], b.data[b.gapEnd:])

	b.data = data
	b.gapEnd = newCap - tail
	return nil
}
