// Package plot implements the bridge between report scripts and an
// external gnuplot engine: argument validation, series data staging,
// command composition and session lifecycle.
package plot

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"
)

// Engine is the session's view of a plotting engine connection: a sink
// for line-oriented commands that can be shut down.
type Engine interface {
	Cmd(line string) error
	Close() error
}

// Config configures a Session.
type Config struct {
	// StartEngine opens a new engine connection. Required; called once
	// at session creation and again on every Flush.
	StartEngine func() (Engine, error)

	// Terminal overrides the auto-detected standard terminal.
	Terminal string

	// TempDir is the directory for staged data files. Empty selects the
	// system temp directory.
	TempDir string
}

// Session owns one engine connection and the scratch files staged for
// it. Sessions are driven synchronously by a single script interpreter;
// they are not safe for concurrent use.
type Session struct {
	start    func() (Engine, error)
	engine   Engine
	terminal string
	files    tempStore
}

// NewSession selects the standard terminal and starts the engine
// connection. An engine start failure is returned as a bridge error;
// there is no session to keep alive at that point.
func NewSession(cfg Config) (*Session, error) {
	terminal := cfg.Terminal
	if terminal == "" {
		terminal = detectTerminal()
	}
	engine, err := cfg.StartEngine()
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("starting plotting engine: %v", err),
			Err:     err,
		}
	}
	return &Session{
		start:    cfg.StartEngine,
		engine:   engine,
		terminal: terminal,
		files:    tempStore{dir: cfg.TempDir},
	}, nil
}

// detectTerminal picks the interactive x11 terminal when a display is
// available and output is not redirected, and falls back to svg.
func detectTerminal() string {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" &&
		os.Getenv("DISPLAY") != "" && term.IsTerminal(int(os.Stdout.Fd())) {
		return "x11"
	}
	return "svg"
}

// StandardTerminal returns the terminal used when none can be inferred.
func (s *Session) StandardTerminal() string {
	return s.terminal
}

// send logs and forwards one command line to the engine.
func (s *Session) send(c string) error {
	if s.engine == nil {
		return &Error{Message: ErrNoEngine.Error(), Err: ErrNoEngine}
	}
	slog.Debug("gnuplot command", "cmd", c)
	return s.engine.Cmd(c)
}

// Cmd forwards a raw command verbatim. Escape hatch for script authors;
// the engine itself is the only validator of what it receives.
func (s *Session) Cmd(text string) error {
	return s.send(text)
}

// SetTitle emits a title directive for the literal string.
func (s *Session) SetTitle(title string) error {
	return s.send(fmt.Sprintf("set title \"%s\"", title))
}

// SetOutput emits the output and terminal directives for file. Width or
// height of zero select the 640x480 default. An empty terminal is
// inferred from the file extension, falling back to the standard
// terminal; an empty file resets the engine's output redirection.
func (s *Session) SetOutput(file string, width, height int, terminal string) error {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}

	if terminal == "" {
		if dot := strings.LastIndex(file, "."); dot >= 0 {
			terminal = file[dot+1:]
		}
		if terminal == "" {
			terminal = s.terminal
		}
	}

	switch terminal {
	case "ps", "eps":
		terminal = "postscript eps color enhanced"
	case "jpg":
		terminal = "jpeg"
	}

	if file != "" {
		if err := s.send(fmt.Sprintf("set output \"%s\"", file)); err != nil {
			return err
		}
	} else {
		if err := s.send("set output"); err != nil {
			return err
		}
	}
	return s.send(fmt.Sprintf("set terminal %s size %d,%d", terminal, width, height))
}

// SetXRange emits padded range directives for the x and x2 axes.
func (s *Session) SetXRange(start, end float64) error {
	r := PaddedRange(start, end)
	if err := s.send(fmt.Sprintf("set xrange [%.3f:%.3f]", r.Low, r.High)); err != nil {
		return err
	}
	return s.send(fmt.Sprintf("set x2range [%.3f:%.3f]", r.Low, r.High))
}

// SetXRangeTime is SetXRange for Unix timestamps: the padded bounds are
// shifted to the engine's reference epoch and emitted as integers.
func (s *Session) SetXRangeTime(start, end int64) error {
	low, high := TimeRange(start, end)
	if err := s.send(fmt.Sprintf("set xrange [%d:%d]", low, high)); err != nil {
		return err
	}
	return s.send(fmt.Sprintf("set x2range [%d:%d]", low, high))
}

// PlotSeries stages numerically keyed series data into one shared file
// and sends the composed plot directive. A nil opts selects the series
// defaults.
func (s *Session) PlotSeries(keys []float64, values []Value, titles []string, opts Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := checkCounts(len(values), len(keys)); err != nil {
		return err
	}
	nseries, rows, err := normalizeRows(values)
	if err != nil {
		return err
	}
	path, err := s.stage(func(f *os.File) error {
		return writeNumericRows(f, keys, rows)
	})
	if err != nil {
		return err
	}
	return s.send(buildPlot(kindSeries, []string{path}, nseries, titles, opts))
}

// PlotMultiSeries stages one file per series, each with its own key
// column, and sends a single combined plot directive.
func (s *Session) PlotMultiSeries(keys, values [][]float64, titles []string, opts Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := checkCounts(len(values), len(keys)); err != nil {
		return err
	}

	files := make([]string, len(keys))
	for i := range keys {
		if err := checkCounts(len(values[i]), len(keys[i])); err != nil {
			return err
		}
		rows := make([][]float64, len(values[i]))
		for j, v := range values[i] {
			rows[j] = []float64{v}
		}
		k := keys[i]
		path, err := s.stage(func(f *os.File) error {
			return writeNumericRows(f, k, rows)
		})
		if err != nil {
			return err
		}
		files[i] = path
	}
	return s.send(buildPlot(kindMulti, files, len(keys), titles, opts))
}

// PlotHistogram stages label-keyed series data and sends a histogram
// plot directive. Labels are quoted in the data file and picked up via
// xtic selectors; there is no implicit style.
func (s *Session) PlotHistogram(labels []string, values []Value, titles []string, opts Options) error {
	if opts == nil {
		opts = Options{}
	}
	if err := checkCounts(len(values), len(labels)); err != nil {
		return err
	}
	nseries, rows, err := normalizeRows(values)
	if err != nil {
		return err
	}
	path, err := s.stage(func(f *os.File) error {
		return writeLabeledRows(f, labels, rows)
	})
	if err != nil {
		return err
	}
	if err := s.send("set style data histogram"); err != nil {
		return err
	}
	return s.send(buildPlot(kindHistogram, []string{path}, nseries, titles, opts))
}

// stage creates a tracked scratch file, fills it via write and closes it
// before the command referencing it is composed.
func (s *Session) stage(write func(*os.File) error) (string, error) {
	f, path, err := s.files.create()
	if err != nil {
		return "", err
	}
	if err := write(f); err != nil {
		f.Close()
		return "", Errorf("writing data file %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return "", Errorf("closing data file %s: %v", path, err)
	}
	return path, nil
}

// Flush restarts the engine connection. The engine buffers rendering
// commands; restarting forces pending output to complete and releases
// the engine's handles on staged files. On failure the session stays
// alive but without a connection until the next successful Flush.
func (s *Session) Flush() error {
	if s.engine != nil {
		s.engine.Close()
		s.engine = nil
	}
	engine, err := s.start()
	if err != nil {
		return &Error{
			Message: fmt.Sprintf("restarting plotting engine: %v", err),
			Err:     err,
		}
	}
	s.engine = engine
	return nil
}

// Close shuts down the engine connection and removes every staged file.
// Calling Close more than once is safe.
func (s *Session) Close() error {
	var err error
	if s.engine != nil {
		err = s.engine.Close()
		s.engine = nil
	}
	s.files.removeAll()
	return err
}

// TempFiles returns the paths currently tracked for cleanup.
func (s *Session) TempFiles() []string {
	return append([]string(nil), s.files.paths...)
}
