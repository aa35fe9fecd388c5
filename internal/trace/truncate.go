package trace

import (
	"runtime"
	"strings"
)

const (
	// overflowKeepHead and overflowKeepTail bound how much of a
	// stack-overflow trace survives truncation. Recursive overflows produce
	// thousands of identical frames; the edges carry all the signal.
	overflowKeepHead = 25
	overflowKeepTail = 25
)

// IsOverflow reports whether err is a stack-overflow kind of runtime failure.
func IsOverflow(err error) bool {
	if err == nil {
		return false
	}
	var rerr runtime.Error
	if !asRuntimeError(err, &rerr) {
		return false
	}
	return strings.Contains(rerr.Error(), "stack overflow") ||
		strings.Contains(rerr.Error(), "goroutine stack exceeds")
}

func asRuntimeError(err error, target *runtime.Error) bool {
	for err != nil {
		if re, ok := err.(runtime.Error); ok {
			*target = re
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// TruncateOverflow keeps the first and last 25 frames of an overflow trace,
// order preserved. Traces of 50 frames or fewer are returned as a copy.
func TruncateOverflow(bt Backtrace) Backtrace {
	if len(bt) <= overflowKeepHead+overflowKeepTail {
		out := make(Backtrace, len(bt))
		copy(out, bt)
		return out
	}
	out := make(Backtrace, 0, overflowKeepHead+overflowKeepTail)
	out = append(out, bt[:overflowKeepHead]...)
	out = append(out, bt[len(bt)-overflowKeepTail:]...)
	return out
}
