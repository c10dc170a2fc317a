// Package gnuplot provides the process link to an external gnuplot
// engine: it launches the binary and streams line-oriented commands to
// its standard input.
package gnuplot

import (
	"fmt"
	"io"
	"os/exec"
)

// DefaultBinary is the engine binary used when none is configured.
const DefaultBinary = "gnuplot"

// Engine is a running gnuplot process. Commands are streamed to it
// asynchronously; files referenced by a plot command must stay valid
// until the process is closed.
type Engine struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// Start launches the engine binary with -persist so interactive windows
// outlive the process. The engine's own output is routed to the given
// writers (either may be nil).
func Start(binary string, stdout, stderr io.Writer) (*Engine, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	cmd := exec.Command(binary, "-persist")
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening pipe to %s: %w", binary, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", binary, err)
	}
	return &Engine{cmd: cmd, stdin: stdin}, nil
}

// Cmd sends one command line to the engine.
func (e *Engine) Cmd(line string) error {
	if _, err := io.WriteString(e.stdin, line+"\n"); err != nil {
		return fmt.Errorf("sending command to engine: %w", err)
	}
	return nil
}

// Close ends the command stream and waits for the engine to exit,
// completing any buffered rendering.
func (e *Engine) Close() error {
	if err := e.stdin.Close(); err != nil {
		e.cmd.Wait()
		return err
	}
	return e.cmd.Wait()
}
