package script

import (
	lua "github.com/yuin/gopher-lua"

	"reportplot/pkg/reportplot/plot"
)

// checkPlotArity enforces the 2-4 positional argument shape shared by
// the plot operations before any value is extracted.
func checkPlotArity(L *lua.LState) {
	nargs := L.GetTop() - 1
	if nargs < 2 || nargs > 4 {
		L.RaiseError("Invalid number of arguments (expected 2-4, got %d)", nargs)
	}
}

// toNumberSlice reads a Lua sequence of numbers.
func toNumberSlice(L *lua.LState, tbl *lua.LTable, arg int) []float64 {
	n := tbl.Len()
	out := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		num, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok {
			L.ArgError(arg, "table of numbers expected")
		}
		out = append(out, float64(num))
	}
	return out
}

// toNestedNumberSlice reads a Lua sequence of number sequences, one
// inner sequence per series.
func toNestedNumberSlice(L *lua.LState, tbl *lua.LTable, arg int) [][]float64 {
	n := tbl.Len()
	out := make([][]float64, 0, n)
	for i := 1; i <= n; i++ {
		inner, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(arg, "table of tables expected")
		}
		out = append(out, toNumberSlice(L, inner, arg))
	}
	return out
}

// toStringSlice reads a Lua sequence as strings, converting numbers.
func toStringSlice(L *lua.LState, tbl *lua.LTable) []string {
	n := tbl.Len()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, lua.LVAsString(tbl.RawGetInt(i)))
	}
	return out
}

// toValueSlice reads a value column whose entries are either scalars or
// per-series rows. The variant is resolved here, once.
func toValueSlice(L *lua.LState, tbl *lua.LTable, arg int) []plot.Value {
	n := tbl.Len()
	out := make([]plot.Value, 0, n)
	for i := 1; i <= n; i++ {
		switch v := tbl.RawGetInt(i).(type) {
		case lua.LNumber:
			out = append(out, plot.Scalar(float64(v)))
		case *lua.LTable:
			out = append(out, plot.Row(toNumberSlice(L, v, arg)))
		default:
			L.ArgError(arg, "number or table of numbers expected")
		}
	}
	return out
}

// optTitles reads the optional titles table (third positional argument).
func optTitles(L *lua.LState) []string {
	if L.GetTop() < 4 {
		return nil
	}
	return toStringSlice(L, L.CheckTable(4))
}

// optPlotOptions reads the optional fourth positional argument: a plain
// style string applied over the defaults, or an options table that
// replaces the defaults wholesale.
func optPlotOptions(L *lua.LState, def plot.Options) plot.Options {
	if L.GetTop() < 5 {
		return def
	}
	switch v := L.Get(5).(type) {
	case lua.LString:
		def["style"] = string(v)
		return def
	case *lua.LTable:
		opts := plot.Options{}
		v.ForEach(func(k, val lua.LValue) {
			opts[lua.LVAsString(k)] = lua.LVAsString(val)
		})
		return opts
	default:
		L.ArgError(5, "style string or options table expected")
		return nil
	}
}
