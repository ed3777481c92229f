// Package gapbuffer implements the editable text buffer at the core of
// quill. Text is stored as UTF-16 code units in a contiguous array with a
// movable gap at the edit point, so repeated inserts and deletes near the
// cursor cost O(1) amortized per code unit.
//
// The package provides:
//
//   - Gap-buffer storage with geometric growth up to a hard size ceiling
//   - Insert, delete, and replace operations that never split a UTF-16
//     surrogate pair
//   - Cursor and selection tracking in line/column and offset coordinates
//   - Per-line direction classification (LTR/RTL/Auto) for bidirectional
//     scripts, used as a layout hint by the renderer
//   - A UTF-8 boundary: all public APIs speak Go strings, the internal
//     representation stays fixed-width
//
// Basic usage:
//
//	buf, err := gapbuffer.NewFromString("Hello, World!")
//	if err != nil {
//	    return err
//	}
//	buf.SetCursorOffset(7)
//	buf.Insert("Beautiful ") // "Hello, Beautiful World!"
//
// Coordinate model:
//
// Logical offsets count UTF-16 code units over the gap-free content. A
// character outside the Basic Multilingual Plane occupies two code units
// (a surrogate pair); no public operation leaves the cursor, a deletion
// boundary, or a selection endpoint between the two halves of a pair.
//
// Line and column lookups scan from the start of the buffer counting
// newlines. There is no cached line-offset table: every conversion is
// O(content length). This is a deliberate tradeoff for small and medium
// documents; the scan lives behind a handful of internal helpers so a
// cached index could replace it without touching callers.
//
// Thread Safety:
//
// A Buffer is not safe for concurrent use. It performs no internal
// locking; a buffer has exactly one owner and callers that share one
// across goroutines must serialize access themselves.
package gapbuffer
