// Package script binds the plotting bridge into a Lua interpreter.
// Report scripts receive a global gnuplot type whose instances own one
// engine connection each, and a report module for run options and
// spreadsheet data.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"reportplot/pkg/reportplot/plot"
)

// Runtime carries everything a report script can reach: the session
// configuration, the options passed to the run, and the sessions the
// script has created so far.
type Runtime struct {
	cfg      plot.Config
	options  map[string]string
	sessions []*plot.Session
}

// NewRuntime returns a runtime creating sessions from cfg. options are
// the script options resolved by report.getopt; nil is fine.
func NewRuntime(cfg plot.Config, options map[string]string) *Runtime {
	if options == nil {
		options = map[string]string{}
	}
	return &Runtime{cfg: cfg, options: options}
}

// Install registers the gnuplot type and the report module in L.
func (r *Runtime) Install(L *lua.LState) {
	r.registerPlotType(L)
	r.registerReportModule(L)
}

// Run executes the report script at path in a fresh interpreter.
// Sessions created by the script stay alive until Close, so the engine
// can keep reading staged files after the script returns.
func (r *Runtime) Run(path string) error {
	L := lua.NewState()
	defer L.Close()
	r.Install(L)
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("report script failed: %w", err)
	}
	return nil
}

// Close tears down every session the script created, shutting down the
// engines and removing staged files. Safe to call more than once.
func (r *Runtime) Close() {
	for _, s := range r.sessions {
		s.Close()
	}
	r.sessions = nil
}
