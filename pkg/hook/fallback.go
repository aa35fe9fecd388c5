package hook

import (
	"fmt"
	"strings"

	"github.com/dotcommander/faultline/internal/trace"
)

// diagnosticMarker prefixes all fallback output so failures of the
// enrichment pipeline are identifiable in scrollback and logs.
const diagnosticMarker = "!! faultline: error reporting failed, printing plain trace"

// maxFailures bounds the failure stack; anything past the cap is dropped
// with a note rather than rendered.
const maxFailures = 8

// failure is one internal error caught inside the enrichment pipeline,
// with the trace of the failure site when one was captured.
type failure struct {
	err error
	bt  trace.Backtrace
}

// failureStack accumulates enrichment failures in the order they occurred
// (oldest cause first).
type failureStack struct {
	entries []failure
	dropped int
}

func (s *failureStack) push(err error, bt trace.Backtrace) {
	if len(s.entries) >= maxFailures {
		s.dropped++
		return
	}
	s.entries = append(s.entries, failure{err: err, bt: bt})
}

func (s *failureStack) empty() bool { return len(s.entries) == 0 }

// fallback is the outermost boundary: it prints the diagnostic marker, each
// accumulated failure oldest-first, and finally the original event, all in
// bare formatting. It never panics back into the pipeline.
func (r *Reporter) fallback(event Event, fails *failureStack) {
	out := r.opts.Out

	fmt.Fprintln(out, diagnosticMarker)
	for i, f := range fails.entries {
		fmt.Fprintf(out, "reporting failure %d/%d: %v\n", i+1, len(fails.entries), f.err)
		if len(f.bt) > 0 {
			fmt.Fprintln(out, indent(f.bt.Plain()))
		}
	}
	if fails.dropped > 0 {
		fmt.Fprintf(out, "(%d further reporting failures not shown)\n", fails.dropped)
	}

	fmt.Fprintln(out, "original error:")
	r.bare(event)
}

// bare prints the unmodified event the way the runtime would: message
// first, then one frame per line. No styling, no model call.
func (r *Reporter) bare(event Event) {
	out := r.opts.Out
	fmt.Fprintf(out, "%s: %s\n", trace.TypeName(event.Err), event.Err.Error())
	if len(event.Trace) > 0 {
		fmt.Fprintln(out, indent(event.Trace.Plain()))
	}
}

func indent(s string) string {
	return "\t" + strings.ReplaceAll(s, "\n", "\n\t")
}
