// Package trace captures and shapes backtraces for the reporting pipeline.
//
// A captured backtrace is never mutated: truncation, reversal, and frame
// hiding all produce new slices so the original event survives any failure
// in the enrichment pipeline.
package trace

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Frame is one entry of a backtrace: a source location plus the enclosing
// function identity used to decide whether the frame can be hidden.
type Frame struct {
	Function string // fully qualified, e.g. "main.run" or "runtime.gopanic"
	File     string
	Line     int
}

// String renders the frame as "file:line function".
func (f Frame) String() string {
	return fmt.Sprintf("%s:%d %s", f.File, f.Line, f.Function)
}

// Backtrace is an ordered sequence of frames, error site first.
type Backtrace []Frame

// Capture records the calling goroutine's stack, skipping the given number
// of frames above Capture itself. Returns an empty trace when nothing is
// recorded (message-only errors).
func Capture(skip int) Backtrace {
	pcs := make([]uintptr, 256)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	var bt Backtrace
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			bt = append(bt, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		}
		if !more {
			break
		}
	}
	return bt
}

// Reversed returns a copy with most-recent frame first.
func (bt Backtrace) Reversed() Backtrace {
	out := make(Backtrace, len(bt))
	for i, f := range bt {
		out[len(bt)-1-i] = f
	}
	return out
}

// Plain serializes the backtrace as plain text, one frame per line, for
// inclusion in the model prompt.
func (bt Backtrace) Plain() string {
	if len(bt) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range bt {
		b.WriteString(f.String())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// TypeName returns the concrete type name of an error value, without the
// package path, for use as the panel title (e.g. "ValueOutOfRange").
// Errors may override the derived name by implementing TypeName() string.
func TypeName(err error) string {
	if err == nil {
		return "error"
	}
	if named, ok := err.(interface{ TypeName() string }); ok {
		return named.TypeName()
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
