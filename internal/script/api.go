package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quill/internal/gapbuffer"
)

// registerBufferAPI binds a `buf` table to the Lua state. Buffer errors
// surface as Lua errors so macros can pcall around risky edits.
func registerBufferAPI(L *lua.LState, buf *gapbuffer.Buffer) {
	check := func(L *lua.LState, err error) {
		if err != nil {
			L.RaiseError("%v", err)
		}
	}

	fns := map[string]lua.LGFunction{
		"insert": func(L *lua.LState) int {
			check(L, buf.Insert(L.CheckString(1)))
			return 0
		},
		"insert_at": func(L *lua.LState) int {
			check(L, buf.InsertAt(L.CheckInt(1), L.CheckString(2)))
			return 0
		},
		"delete": func(L *lua.LState) int {
			check(L, buf.Delete(L.CheckInt(1)))
			return 0
		},
		"delete_range": func(L *lua.LState) int {
			check(L, buf.DeleteRange(L.CheckInt(1), L.CheckInt(2)))
			return 0
		},
		"replace": func(L *lua.LState) int {
			check(L, buf.Replace(L.CheckInt(1), L.CheckInt(2), L.CheckString(3)))
			return 0
		},
		"content": func(L *lua.LState) int {
			L.Push(lua.LString(buf.Content()))
			return 1
		},
		"range": func(L *lua.LState) int {
			s, err := buf.Range(L.CheckInt(1), L.CheckInt(2))
			check(L, err)
			L.Push(lua.LString(s))
			return 1
		},
		"line": func(L *lua.LState) int {
			s, err := buf.Line(L.CheckInt(1))
			check(L, err)
			L.Push(lua.LString(s))
			return 1
		},
		"line_direction": func(L *lua.LState) int {
			info, err := buf.LineInfo(L.CheckInt(1))
			check(L, err)
			L.Push(lua.LString(info.Direction.String()))
			return 1
		},
		"line_count": func(L *lua.LState) int {
			L.Push(lua.LNumber(buf.LineCount()))
			return 1
		},
		"len": func(L *lua.LState) int {
			L.Push(lua.LNumber(buf.Len()))
			return 1
		},
		"cursor": func(L *lua.LState) int {
			c := buf.Cursor()
			L.Push(lua.LNumber(c.Line))
			L.Push(lua.LNumber(c.Column))
			L.Push(lua.LNumber(c.Offset))
			return 3
		},
		"set_cursor": func(L *lua.LState) int {
			buf.SetCursor(L.CheckInt(1), L.CheckInt(2))
			return 0
		},
		"set_cursor_offset": func(L *lua.LState) int {
			buf.SetCursorOffset(L.CheckInt(1))
			return 0
		},
		"select": func(L *lua.LState) int {
			buf.SetSelection(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), L.OptBool(5, false))
			return 0
		},
		"selected_text": func(L *lua.LState) int {
			s, err := buf.SelectedText()
			check(L, err)
			L.Push(lua.LString(s))
			return 1
		},
		"clear_selection": func(L *lua.LState) int {
			buf.ClearSelection()
			return 0
		},
		"stats": func(L *lua.LState) int {
			st := buf.Stats()
			L.Push(toLua(L, map[string]any{
				"size_bytes": st.SizeBytes,
				"length":     st.Length,
				"line_count": st.LineCount,
				"gap_size":   st.GapSize,
				"capacity":   st.Capacity,
				"modified":   st.Modified,
				"readonly":   st.ReadOnly,
			}))
			return 1
		},
	}

	t := L.NewTable()
	L.SetFuncs(t, fns)
	L.SetGlobal("buf", t)
}
