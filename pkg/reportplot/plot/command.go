package plot

import (
	"fmt"
	"strings"
)

// Options carries per-plot string options. The composer recognizes
// "style" (rendering style appended as a "with" clause) and "command"
// (a raw clause overriding per-series generation); other keys are
// preserved but ignored.
type Options map[string]string

// DefaultOptions returns the option set used when a series plot receives
// no explicit options. Histograms start from an empty set instead: they
// have no implicit style.
func DefaultOptions() Options {
	return Options{"style": "lines"}
}

// plotKind selects the clause form of one plot directive.
type plotKind int

const (
	kindSeries plotKind = iota
	kindMulti
	kindHistogram
)

// buildPlot composes a single plot directive for nseries series backed
// by the given data files: one shared file, or one file per series for
// multi-series plots. When opts carries a "command" override the whole
// per-series clause generation is skipped.
func buildPlot(kind plotKind, files []string, nseries int, titles []string, opts Options) string {
	var b strings.Builder
	b.WriteString("plot ")

	if cmd, ok := opts["command"]; ok {
		fmt.Fprintf(&b, "\"%s\" %s", files[0], cmd)
		return b.String()
	}

	style, hasStyle := opts["style"]
	for i := 0; i < nseries; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		switch kind {
		case kindMulti:
			fmt.Fprintf(&b, "\"%s\" using 1:2", files[i])
		case kindHistogram:
			fmt.Fprintf(&b, "\"%s\" using %d:xtic(1)", files[0], i+2)
		default:
			fmt.Fprintf(&b, "\"%s\" using 1:%d", files[0], i+2)
		}
		if i < len(titles) {
			fmt.Fprintf(&b, " title \"%s\"", titles[i])
		} else {
			b.WriteString(" notitle")
		}
		if hasStyle {
			b.WriteString(" with " + style)
		}
	}
	return b.String()
}
