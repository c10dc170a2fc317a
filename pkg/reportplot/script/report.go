package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"reportplot/pkg/reportplot/dataset"
)

// registerReportModule installs the report module: run options and
// spreadsheet data access for report scripts.
func (r *Runtime) registerReportModule(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "getopt", L.NewFunction(r.getopt))
	L.SetField(mod, "load_table", L.NewFunction(r.loadTable))
	L.SetGlobal("report", mod)
}

// getopt resolves a comma-separated list of alternative option names
// against the options passed to the run. Returns the first match, the
// default when given, or nil.
func (r *Runtime) getopt(L *lua.LState) int {
	nargs := L.GetTop()
	if nargs != 1 && nargs != 2 {
		L.RaiseError("Invalid number of arguments (1 or 2 expected)")
	}
	for _, key := range strings.Split(L.CheckString(1), ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if v, ok := r.options[key]; ok {
			L.Push(lua.LString(v))
			return 1
		}
	}
	if nargs == 2 {
		L.Push(L.Get(2))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

// loadTable reads a series table from a spreadsheet sheet and returns
// keys, values and titles tables ready for the plot operations.
func (r *Runtime) loadTable(L *lua.LState) int {
	path := L.CheckString(1)
	sheet := L.CheckString(2)

	t, err := dataset.Load(path, sheet)
	if err != nil {
		L.RaiseError("%s", err)
	}

	keys := L.NewTable()
	for _, k := range t.Keys {
		if k.Numeric {
			keys.Append(lua.LNumber(k.Num))
		} else {
			keys.Append(lua.LString(k.Label))
		}
	}
	values := L.NewTable()
	for _, row := range t.Rows {
		rt := L.NewTable()
		for _, v := range row {
			rt.Append(lua.LNumber(v))
		}
		values.Append(rt)
	}
	titles := L.NewTable()
	for _, title := range t.Titles {
		titles.Append(lua.LString(title))
	}

	L.Push(keys)
	L.Push(values)
	L.Push(titles)
	return 3
}
