package script

import (
	lua "github.com/yuin/gopher-lua"

	"reportplot/pkg/reportplot/plot"
)

const plotTypeName = "gnuplot"

// registerPlotType installs the gnuplot type. Scripts create sessions
// with gnuplot:new() and drive them through the methods below; each
// instance owns one engine connection.
func (r *Runtime) registerPlotType(L *lua.LState) {
	mt := L.NewTypeMetatable(plotTypeName)
	L.SetGlobal(plotTypeName, mt)
	L.SetField(mt, "new", L.NewFunction(r.newPlot))
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"cmd":               plotCmd,
		"set_output":        plotSetOutput,
		"set_title":         plotSetTitle,
		"set_xrange":        plotSetXRange,
		"set_xrange_time":   plotSetXRangeTime,
		"plot_series":       plotSeries,
		"plot_multi_series": plotMultiSeries,
		"plot_histogram":    plotHistogram,
		"flush":             plotFlush,
	}))
}

func (r *Runtime) newPlot(L *lua.LState) int {
	session, err := plot.NewSession(r.cfg)
	if err != nil {
		L.RaiseError("%s", err)
	}
	r.sessions = append(r.sessions, session)

	ud := L.NewUserData()
	ud.Value = session
	L.SetMetatable(ud, L.GetTypeMetatable(plotTypeName))
	L.Push(ud)
	return 1
}

func checkSession(L *lua.LState) *plot.Session {
	ud := L.CheckUserData(1)
	if s, ok := ud.Value.(*plot.Session); ok {
		return s
	}
	L.ArgError(1, "gnuplot object expected")
	return nil
}

// raiseIf converts a bridge error into a Lua error carrying the current
// script location.
func raiseIf(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err)
	}
}

func plotCmd(L *lua.LState) int {
	s := checkSession(L)
	raiseIf(L, s.Cmd(L.CheckString(2)))
	return 0
}

func plotSetOutput(L *lua.LState) int {
	s := checkSession(L)
	nargs := L.GetTop() - 1
	if nargs < 1 || nargs > 4 {
		L.RaiseError("Invalid number of arguments (expected 1-4, got %d)", nargs)
	}
	file := L.CheckString(2)
	width := L.OptInt(3, 640)
	height := L.OptInt(4, 480)
	terminal := L.OptString(5, "")
	raiseIf(L, s.SetOutput(file, width, height, terminal))
	return 0
}

func plotSetTitle(L *lua.LState) int {
	s := checkSession(L)
	raiseIf(L, s.SetTitle(L.CheckString(2)))
	return 0
}

func plotSetXRange(L *lua.LState) int {
	s := checkSession(L)
	start := float64(L.CheckNumber(2))
	end := float64(L.CheckNumber(3))
	raiseIf(L, s.SetXRange(start, end))
	return 0
}

func plotSetXRangeTime(L *lua.LState) int {
	s := checkSession(L)
	start := L.CheckInt64(2)
	end := L.CheckInt64(3)
	raiseIf(L, s.SetXRangeTime(start, end))
	return 0
}

func plotSeries(L *lua.LState) int {
	s := checkSession(L)
	checkPlotArity(L)
	keys := toNumberSlice(L, L.CheckTable(2), 2)
	values := toValueSlice(L, L.CheckTable(3), 3)
	titles := optTitles(L)
	opts := optPlotOptions(L, plot.DefaultOptions())
	raiseIf(L, s.PlotSeries(keys, values, titles, opts))
	return 0
}

func plotMultiSeries(L *lua.LState) int {
	s := checkSession(L)
	checkPlotArity(L)
	keys := toNestedNumberSlice(L, L.CheckTable(2), 2)
	values := toNestedNumberSlice(L, L.CheckTable(3), 3)
	titles := optTitles(L)
	opts := optPlotOptions(L, plot.DefaultOptions())
	raiseIf(L, s.PlotMultiSeries(keys, values, titles, opts))
	return 0
}

func plotHistogram(L *lua.LState) int {
	s := checkSession(L)
	checkPlotArity(L)
	labels := toStringSlice(L, L.CheckTable(2))
	values := toValueSlice(L, L.CheckTable(3), 3)
	titles := optTitles(L)
	opts := optPlotOptions(L, plot.Options{})
	raiseIf(L, s.PlotHistogram(labels, values, titles, opts))
	return 0
}

func plotFlush(L *lua.LState) int {
	s := checkSession(L)
	raiseIf(L, s.Flush())
	return 0
}
