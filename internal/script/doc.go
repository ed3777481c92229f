// Package script runs Lua macros against a text buffer. Each run gets
// a fresh, sandboxed interpreter with a `buf` table bound to the
// target buffer, so macros can inspect and edit the document:
//
//	buf.set_cursor(0, 0)
//	buf.insert("-- edited by macro\n")
//	print(buf.line_count())
//
// Lines, columns, and offsets in the Lua API are 0-based and counted
// in UTF-16 code units, exactly as in the buffer itself.
//
// The sandbox removes the os, io, and debug surfaces along with load
// and dofile; macros compute over the buffer, they do not touch the
// host. A macro that raises an error leaves whatever edits it already
// made, matching the buffer's own non-transactional replace semantics.
package script
