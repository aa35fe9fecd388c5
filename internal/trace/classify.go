package trace

import "strings"

// Classifier decides whether a frame belongs to a library/internal region
// that can be hidden from the rendered frame list. Classification is an
// explicit prefix allow/deny list rather than runtime module inspection.
type Classifier struct {
	// HidePrefixes marks frames as hidden when the function name starts
	// with any of these prefixes.
	HidePrefixes []string
	// ShowPrefixes wins over HidePrefixes for frames matching both.
	ShowPrefixes []string
}

// DefaultClassifier hides Go runtime, testing, and faultline's own
// reporting frames.
func DefaultClassifier() Classifier {
	return Classifier{
		HidePrefixes: []string{
			"runtime.",
			"testing.",
			"github.com/dotcommander/faultline/pkg/hook.",
			"github.com/dotcommander/faultline/internal/",
		},
	}
}

// Hidden reports whether the frame should be suppressed.
func (c Classifier) Hidden(f Frame) bool {
	for _, p := range c.ShowPrefixes {
		if strings.HasPrefix(f.Function, p) {
			return false
		}
	}
	for _, p := range c.HidePrefixes {
		if strings.HasPrefix(f.Function, p) {
			return true
		}
	}
	return false
}

// Visible returns a new backtrace with hidden frames removed and a count of
// how many were suppressed.
func (c Classifier) Visible(bt Backtrace) (Backtrace, int) {
	out := make(Backtrace, 0, len(bt))
	hidden := 0
	for _, f := range bt {
		if c.Hidden(f) {
			hidden++
			continue
		}
		out = append(out, f)
	}
	return out, hidden
}
