// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"gibbsmotif/internal/output"
	"gibbsmotif/internal/pretty"
)

// Options tune the writers that support them; others ignore them.
type Options struct {
	Header bool // TSV header row
	Pretty bool // append the alignment block to text output
	Render pretty.Options
}

// Func writes one report in a single format.
type Func func(w io.Writer, r output.Report, opt Options) error

// Writer registry (format → handler). Register in init() blocks.
var reportWriters = map[string]Func{}

// Register adds or replaces the writer for format (last wins).
func Register(format string, fn Func) { reportWriters[format] = fn }

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(reportWriters))
	for f := range reportWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, r output.Report, opt Options) error {
	fn, ok := reportWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, r, opt)
}
