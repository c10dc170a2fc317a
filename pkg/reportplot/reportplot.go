package reportplot

import (
	"fmt"
	"os"

	"reportplot/pkg/reportplot/gnuplot"
	"reportplot/pkg/reportplot/plot"
	"reportplot/pkg/reportplot/script"
)

// Run executes the report script at path. Sessions created by the
// script are torn down after the script returns, which also removes
// their staged data files.
func Run(path string, opts Options) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrScriptNotFound, path)
	}

	cfg := plot.Config{
		StartEngine: func() (plot.Engine, error) {
			return gnuplot.Start(opts.GnuplotPath, opts.out(), opts.errOut())
		},
		Terminal: opts.Terminal,
		TempDir:  opts.TempDir,
	}

	runtime := script.NewRuntime(cfg, opts.ScriptOptions)
	defer runtime.Close()
	return runtime.Run(path)
}
