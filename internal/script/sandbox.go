package script

import (
	lua "github.com/yuin/gopher-lua"
)

// newSandboxedState builds an interpreter with only the safe library
// surface. Base, string, table, and math load; os, io, debug, and the
// module loader do not, and the code-loading escape hatches are
// stripped from the base library.
func newSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(open.fn))
		L.Push(lua.LString(open.name))
		L.Call(1, 0)
	}

	// print is replaced per-run with a logger-backed version; the
	// default would write to stdout and corrupt the terminal screen.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "print"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L
}
