package script

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	lua "github.com/yuin/gopher-lua"

	"reportplot/pkg/reportplot/plot"
)

type recorder struct {
	lines  []string
	closed int
}

func (r *recorder) Cmd(line string) error {
	r.lines = append(r.lines, line)
	return nil
}

func (r *recorder) Close() error {
	r.closed++
	return nil
}

func newTestRuntime(t *testing.T, options map[string]string) (*Runtime, *[]*recorder) {
	t.Helper()
	engines := &[]*recorder{}
	cfg := plot.Config{
		StartEngine: func() (plot.Engine, error) {
			e := &recorder{}
			*engines = append(*engines, e)
			return e, nil
		},
		Terminal: "svg",
		TempDir:  t.TempDir(),
	}
	rt := NewRuntime(cfg, options)
	t.Cleanup(rt.Close)
	return rt, engines
}

func runScript(t *testing.T, rt *Runtime, src string) error {
	t.Helper()
	L := lua.NewState()
	defer L.Close()
	rt.Install(L)
	return L.DoString(src)
}

func TestPlotSeriesFromScript(t *testing.T) {
	rt, engines := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:plot_series({1, 2, 3}, {{1, 2}, {3, 4}, {5, 6}}, {"added"}, "points")
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}

	e := (*engines)[0]
	if len(e.lines) != 1 {
		t.Fatalf("Expected 1 engine command, got %d: %v", len(e.lines), e.lines)
	}
	cmd := e.lines[0]
	if !strings.HasPrefix(cmd, `plot "`) {
		t.Errorf("Expected a plot directive, got %q", cmd)
	}
	if !strings.Contains(cmd, `using 1:2 title "added" with points`) {
		t.Errorf("Missing first series clause: %q", cmd)
	}
	if !strings.Contains(cmd, "using 1:3 notitle with points") {
		t.Errorf("Missing second series clause: %q", cmd)
	}
}

func TestPlotSeriesArityError(t *testing.T) {
	rt, engines := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:plot_series({1}, {1}, {}, "lines", 5)
	`)
	if err == nil {
		t.Fatal("Expected an arity error")
	}
	if !strings.Contains(err.Error(), "expected 2-4, got 5") {
		t.Errorf("Unexpected error message: %v", err)
	}
	if len((*engines)[0].lines) != 0 {
		t.Errorf("Expected no engine commands, got %v", (*engines)[0].lines)
	}
}

func TestPlotSeriesCountMismatchFromScript(t *testing.T) {
	rt, _ := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:plot_series({1, 2, 3}, {1, 2})
	`)
	if err == nil {
		t.Fatal("Expected a count mismatch error")
	}
	if !strings.Contains(err.Error(), "(2 != 3)") {
		t.Errorf("Expected both counts in the message, got %v", err)
	}
}

func TestCommandOverrideFromScript(t *testing.T) {
	rt, engines := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:plot_series({1, 2}, {{1, 2, 3}, {4, 5, 6}}, {}, {command = "using 1:3 with points"})
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	cmd := (*engines)[0].lines[0]
	if !strings.HasSuffix(cmd, `" using 1:3 with points`) {
		t.Errorf("Expected the raw command override, got %q", cmd)
	}
	if strings.Count(cmd, "using") != 1 {
		t.Errorf("Expected no per-series clauses, got %q", cmd)
	}
}

func TestHistogramFromScript(t *testing.T) {
	rt, engines := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:plot_histogram({"jan", "feb"}, {3, 7})
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	e := (*engines)[0]
	if len(e.lines) != 2 {
		t.Fatalf("Expected 2 engine commands, got %d: %v", len(e.lines), e.lines)
	}
	if e.lines[0] != "set style data histogram" {
		t.Errorf("Expected the histogram style directive first, got %q", e.lines[0])
	}
	if !strings.Contains(e.lines[1], "using 2:xtic(1) notitle") {
		t.Errorf("Unexpected histogram clause: %q", e.lines[1])
	}
	if strings.Contains(e.lines[1], " with ") {
		t.Errorf("Histograms have no implicit style: %q", e.lines[1])
	}
}

func TestMultiSeriesFromScript(t *testing.T) {
	rt, engines := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:plot_multi_series({{1, 2}, {3, 4, 5}}, {{10, 20}, {30, 40, 50}}, {"a", "b"})
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	cmd := (*engines)[0].lines[0]
	if strings.Count(cmd, "using 1:2") != 2 {
		t.Errorf("Expected two per-file clauses, got %q", cmd)
	}
	if !strings.Contains(cmd, `title "a"`) || !strings.Contains(cmd, `title "b"`) {
		t.Errorf("Missing series titles: %q", cmd)
	}
}

func TestSetOutputFromScript(t *testing.T) {
	rt, engines := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:set_output("chart.jpg", 800, 600)
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	e := (*engines)[0]
	if e.lines[0] != `set output "chart.jpg"` {
		t.Errorf("Unexpected output directive: %q", e.lines[0])
	}
	if e.lines[1] != "set terminal jpeg size 800,600" {
		t.Errorf("Unexpected terminal directive: %q", e.lines[1])
	}
}

func TestSetOutputArityError(t *testing.T) {
	rt, _ := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:set_output("f.png", 1, 2, "png", "extra")
	`)
	if err == nil {
		t.Fatal("Expected an arity error")
	}
	if !strings.Contains(err.Error(), "expected 1-4, got 5") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestXRangeFromScript(t *testing.T) {
	rt, engines := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:set_xrange(0, 100)
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	if (*engines)[0].lines[0] != "set xrange [-5.000:105.000]" {
		t.Errorf("Unexpected xrange directive: %q", (*engines)[0].lines[0])
	}
}

func TestFlushFromScript(t *testing.T) {
	rt, engines := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:flush()
		p:cmd("replot")
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	if len(*engines) != 2 {
		t.Fatalf("Expected a second engine after flush, got %d", len(*engines))
	}
	if (*engines)[0].closed != 1 {
		t.Errorf("Expected the first engine closed, got %d", (*engines)[0].closed)
	}
	if len((*engines)[1].lines) != 1 || (*engines)[1].lines[0] != "replot" {
		t.Errorf("Expected the raw command on the new engine, got %v", (*engines)[1].lines)
	}
}

func TestRuntimeCloseTearsDownSessions(t *testing.T) {
	rt, engines := newTestRuntime(t, nil)
	err := runScript(t, rt, `
		local p = gnuplot.new()
		p:cmd("set grid")
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	rt.Close()
	if (*engines)[0].closed != 1 {
		t.Errorf("Expected the engine closed at teardown, got %d", (*engines)[0].closed)
	}
	// Closing twice is safe.
	rt.Close()
}

func TestGetopt(t *testing.T) {
	rt, _ := newTestRuntime(t, map[string]string{"output": "o.svg"})
	err := runScript(t, rt, `
		assert(report.getopt("o,output") == "o.svg")
		assert(report.getopt("missing", "fallback") == "fallback")
		assert(report.getopt("missing") == nil)
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
}

func TestGetoptArityError(t *testing.T) {
	rt, _ := newTestRuntime(t, nil)
	err := runScript(t, rt, `report.getopt("a", "b", "c")`)
	if err == nil {
		t.Fatal("Expected an arity error")
	}
	if !strings.Contains(err.Error(), "1 or 2 expected") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestLoadTableFromScript(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "month")
	f.SetCellValue("Sheet1", "B1", "commits")
	f.SetCellValue("Sheet1", "A2", 1)
	f.SetCellValue("Sheet1", "B2", 42)
	f.SetCellValue("Sheet1", "A3", 2)
	f.SetCellValue("Sheet1", "B3", 17)
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f.Close()

	rt, engines := newTestRuntime(t, nil)
	L := lua.NewState()
	defer L.Close()
	rt.Install(L)
	L.SetGlobal("datafile", lua.LString(path))

	err := L.DoString(`
		local keys, values, titles = report.load_table(datafile, "Sheet1")
		assert(#keys == 2 and keys[1] == 1)
		assert(#values == 2 and values[2][1] == 17)
		assert(titles[1] == "commits")
		local p = gnuplot.new()
		p:plot_series(keys, values, titles)
	`)
	if err != nil {
		t.Fatalf("Script failed: %v", err)
	}
	cmd := (*engines)[0].lines[0]
	if !strings.Contains(cmd, `title "commits"`) {
		t.Errorf("Expected the loaded title in the plot command, got %q", cmd)
	}
}
