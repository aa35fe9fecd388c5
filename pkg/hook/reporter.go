// Package hook reports uncaught panics and errors with a styled backtrace
// panel and an AI-generated explanation, falling back to the plain trace
// whenever the enrichment pipeline itself fails.
//
// A host process installs the hook once at startup:
//
//	func main() {
//		defer hook.Install(hook.DefaultOptions()).Recover()
//		run()
//	}
//
// Installation replaces nothing implicitly: the Reporter only sees panics
// on goroutines where its Recover is deferred, and errors passed to Report.
package hook

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/dotcommander/faultline/internal/prompt"
	"github.com/dotcommander/faultline/internal/render"
	"github.com/dotcommander/faultline/internal/trace"
)

// Event is the original (error, backtrace) pair being reported. It is never
// mutated; every rendering step works on copies.
type Event struct {
	Err   error
	Trace trace.Backtrace
}

// Asker runs the credential → completion → answer-panel chain.
type Asker interface {
	Ask(w io.Writer, rc *render.Context, promptText string) error
	RenderMissingCredentialNotice(w io.Writer, rc *render.Context) error
}

// Reporter renders error events. Configuration is injected at construction
// and immutable afterwards; each event rebuilds its rendering context.
type Reporter struct {
	opts       Options
	classifier trace.Classifier
	asker      Asker

	// frameList is swappable in tests to inject mid-pipeline failures.
	frameList func(rc *render.Context, frames []trace.Frame, elided, hidden int) string
}

// New builds a Reporter with the given options.
func New(opts Options) *Reporter {
	opts = opts.withDefaults()
	cls := trace.DefaultClassifier()
	if opts.HidePrefixes != nil {
		cls.HidePrefixes = opts.HidePrefixes
	}
	if opts.ShowPrefixes != nil {
		cls.ShowPrefixes = opts.ShowPrefixes
	}
	return &Reporter{
		opts:       opts,
		classifier: cls,
		asker:      render.NewAsker(),
		frameList: func(rc *render.Context, frames []trace.Frame, elided, hidden int) string {
			return rc.FrameList(frames, elided, hidden)
		},
	}
}

//nolint:gochecknoglobals // process-wide default reporter, set once by Install
var (
	installedMu sync.RWMutex
	installed   *Reporter
)

// Install builds a Reporter and registers it as the process default used by
// the package-level Recover. Registration lasts for the process lifetime.
func Install(opts Options) *Reporter {
	r := New(opts)
	installedMu.Lock()
	installed = r
	installedMu.Unlock()
	return r
}

// Recover is a deferred helper using the reporter registered by Install.
// Without a prior Install it re-panics, preserving the runtime default.
func Recover() {
	rec := recover()
	if rec == nil {
		return
	}
	installedMu.RLock()
	r := installed
	installedMu.RUnlock()
	if r == nil {
		panic(rec)
	}
	r.handle(rec)
}

// Recover reports a panic on the current goroutine and exits the process
// with a non-zero status. Use in a defer at the top of main or a goroutine.
func (r *Reporter) Recover() {
	rec := recover()
	if rec == nil {
		return
	}
	r.handle(rec)
}

func (r *Reporter) handle(rec any) {
	// Skip the frames between the panic site and this handler.
	bt := trimRecoveryFrames(trace.Capture(2))
	r.Report(asError(rec), bt)
	r.opts.Exit(2)
}

// Report runs the full pipeline for one error event: overflow truncation,
// narrow-terminal check, styled trace + message panels, prompt composition,
// model query, and answer panel. Failures anywhere inside never suppress
// the original event: the recovery boundary downgrades to bare output.
func (r *Reporter) Report(err error, bt trace.Backtrace) {
	// A nil error still reports: normalize it so the bare fallback never
	// dereferences nil after the enrichment pipeline has already failed on it.
	err = asError(err)
	event := Event{Err: err, Trace: bt}

	working := bt
	if trace.IsOverflow(err) {
		working = trace.TruncateOverflow(bt)
	}

	width := r.opts.Width
	if width == 0 {
		width = render.DetectWidth(r.opts.Out)
	}
	if width < render.MinWidth {
		fmt.Fprintf(r.opts.Out, "faultline: terminal narrower than %d columns; printing plain trace\n", render.MinWidth)
		r.bare(event)
		return
	}

	fails := &failureStack{}
	buf := &bytes.Buffer{}
	r.enrich(buf, width, event, working, fails)

	if fails.empty() {
		// Flush the styled output only when the whole pipeline succeeded,
		// so a mid-pipeline failure never leaves a partial panel behind.
		_, _ = io.Copy(r.opts.Out, buf)
		return
	}
	r.fallback(event, fails)
}

// enrich renders the styled panels and the AI answer into buf, recording
// any panic or error on fails.
func (r *Reporter) enrich(buf *bytes.Buffer, width int, event Event, working trace.Backtrace, fails *failureStack) {
	defer func() {
		if rec := recover(); rec != nil {
			fails.push(asError(rec), trace.Capture(2))
		}
	}()

	rc := render.NewContext(width)
	typeName := trace.TypeName(event.Err)

	plainTrace := ""
	if len(working) > 0 {
		frames := working
		var hidden int
		if r.opts.HideFrames {
			frames, hidden = r.classifier.Visible(frames)
		}
		if r.opts.ReverseBacktrace {
			frames = frames.Reversed()
		}
		elided := 0
		if len(frames) > r.opts.MaxFrames {
			elided = len(frames) - r.opts.MaxFrames
			frames = frames[:r.opts.MaxFrames]
		}

		fmt.Fprintln(buf, rc.Rule(typeName))
		fmt.Fprintln(buf, r.frameList(rc, frames, elided, hidden))
		plainTrace = frames.Plain()
	}

	message := event.Err.Error()
	body, err := render.Message(rc, message)
	if err != nil {
		fails.push(err, nil)
		return
	}
	fmt.Fprintln(buf, rc.Panel(typeName, "Error", body))

	promptText := prompt.Compose(message, plainTrace)
	if err := r.asker.Ask(buf, rc, promptText); err != nil {
		fails.push(err, nil)
	}
}

// asError normalizes a recovered panic value.
func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &panicValue{value: v}
}

// panicValue wraps a non-error panic payload.
type panicValue struct{ value any }

func (p *panicValue) Error() string { return fmt.Sprint(p.value) }

// TypeName titles panels for non-error panics by the payload's dynamic type.
func (p *panicValue) TypeName() string { return fmt.Sprintf("panic (%T)", p.value) }

// trimRecoveryFrames drops the runtime panic plumbing from the top of a
// trace captured inside a recover handler.
func trimRecoveryFrames(bt trace.Backtrace) trace.Backtrace {
	for i, f := range bt {
		if f.Function != "runtime.gopanic" {
			continue
		}
		return bt[i+1:]
	}
	return bt
}
