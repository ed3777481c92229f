package script

import (
	lua "github.com/yuin/gopher-lua"
)

// toLua converts a Go value to its Lua representation. Maps become
// tables keyed by string, slices become 1-indexed arrays.
func toLua(L *lua.LState, v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case string:
		return lua.LString(v)
	case map[string]any:
		t := L.NewTable()
		for k, mv := range v {
			t.RawSetString(k, toLua(L, mv))
		}
		return t
	case []any:
		t := L.NewTable()
		for i, sv := range v {
			t.RawSetInt(i+1, toLua(L, sv))
		}
		return t
	default:
		return lua.LNil
	}
}

// toGo converts a Lua value to a Go value. Tables with contiguous
// integer keys from 1 become slices, everything else becomes a
// string-keyed map. Cycles collapse to nil.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	length := t.Len()
	if length > 0 {
		isArray := true
		count := 0
		t.ForEach(func(k, _ lua.LValue) {
			count++
			n, ok := k.(lua.LNumber)
			if !ok || float64(n) != float64(int(n)) || int(n) < 1 || int(n) > length {
				isArray = false
			}
		})
		if isArray && count == length {
			out := make([]any, length)
			for i := 1; i <= length; i++ {
				out[i-1] = toGoVisited(t.RawGetInt(i), visited)
			}
			return out
		}
	}

	out := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		out[k.String()] = toGoVisited(v, visited)
	})
	return out
}
