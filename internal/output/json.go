// Package output emits the machine-readable envelope the CLI commands print
// to stdout. Human-facing rendering lives in internal/render; this package
// exists so `key status` and friends stay scriptable.
package output

import (
	"encoding/json"
	"os"
)

// envelopeVersion tags every envelope so scripted consumers can detect
// shape changes.
const envelopeVersion = "v1"

// Envelope is the common JSON shape of a command result.
type Envelope struct {
	SchemaVersion string `json:"schema_version"`
	Success       bool   `json:"success"`
	Data          any    `json:"data,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Success wraps command data in a successful envelope.
func Success(data any) Envelope {
	return Envelope{
		SchemaVersion: envelopeVersion,
		Success:       true,
		Data:          data,
	}
}

// Error wraps a command failure in an envelope.
func Error(err error) Envelope {
	return Envelope{
		SchemaVersion: envelopeVersion,
		Success:       false,
		Error:         err.Error(),
	}
}

// Print encodes v to stdout. Compact by default so scripted callers get one
// line per command; set FAULTLINE_PRETTY_JSON=1 for indented output.
func Print(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if p := os.Getenv("FAULTLINE_PRETTY_JSON"); p == "1" || p == "true" {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// PrintSuccess prints data in a successful envelope.
func PrintSuccess(data any) error {
	return Print(Success(data))
}

// PrintError prints err in a failure envelope.
func PrintError(err error) error {
	return Print(Error(err))
}
