package hook

import (
	"io"
	"os"

	"github.com/dotcommander/faultline/internal/app"
)

// Options configure a Reporter. Fixed at install time; not reconfigurable
// per event.
type Options struct {
	// ReverseBacktrace shows the most-recent frame first.
	ReverseBacktrace bool
	// MaxFrames caps the rendered frame count before eliding.
	MaxFrames int
	// HideFrames suppresses frames belonging to internal/library modules.
	HideFrames bool

	// HidePrefixes and ShowPrefixes override the default library-frame
	// classification. ShowPrefixes wins on conflict.
	HidePrefixes []string
	ShowPrefixes []string

	// Out receives all rendered output. Defaults to os.Stderr.
	Out io.Writer
	// Width overrides terminal width detection. Zero means detect.
	Width int
	// Exit ends the process after a recovered panic is reported.
	// Defaults to os.Exit. Swappable in tests.
	Exit func(code int)
}

// DefaultOptions returns the standard configuration, with config.yaml
// overrides applied for the backtrace rendering knobs.
func DefaultOptions() Options {
	cfg := app.EffectiveSettings()
	opts := Options{
		ReverseBacktrace: true,
		MaxFrames:        cfg.MaxFrames,
		HideFrames:       true,
		Out:              os.Stderr,
		Exit:             os.Exit,
	}
	if cfg.ReverseBacktrace != nil {
		opts.ReverseBacktrace = *cfg.ReverseBacktrace
	}
	if cfg.HideFrames != nil {
		opts.HideFrames = *cfg.HideFrames
	}
	return opts
}

func (o Options) withDefaults() Options {
	if o.Out == nil {
		o.Out = os.Stderr
	}
	if o.MaxFrames <= 0 {
		o.MaxFrames = 30
	}
	if o.Exit == nil {
		o.Exit = os.Exit
	}
	return o
}
