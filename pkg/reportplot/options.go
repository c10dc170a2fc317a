// Package reportplot runs Lua report scripts against a gnuplot bridge.
package reportplot

import (
	"io"
	"os"
)

// Options configures a report run.
type Options struct {
	// GnuplotPath is the engine binary to launch. Empty selects the
	// gnuplot found on PATH.
	GnuplotPath string
	// Terminal overrides the auto-detected standard terminal.
	Terminal string
	// TempDir is the directory for staged data files.
	TempDir string
	// ScriptOptions are the key/value options report scripts read via
	// report.getopt.
	ScriptOptions map[string]string
	// Out receives the engine's own output. If nil, defaults to stdout.
	Out io.Writer
	// Err receives the engine's diagnostics. If nil, defaults to stderr.
	Err io.Writer
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

func (o Options) errOut() io.Writer {
	if o.Err != nil {
		return o.Err
	}
	return os.Stderr
}
