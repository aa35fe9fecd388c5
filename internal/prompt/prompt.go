// Package prompt builds the one-shot instruction sent to the chat model.
package prompt

import (
	"strings"
	"unicode/utf8"
)

// maxPromptBytes caps the composed prompt so a pathological message or trace
// cannot blow the request body. Oversized prompts are cut at the cap, on a
// rune boundary.
const maxPromptBytes = 16000

// Compose builds the fixed-template instruction for the model from a rendered
// error message and an optional plain-text backtrace. Deterministic given
// identical inputs: no randomness, no hidden state, no history. Output never
// exceeds maxPromptBytes.
func Compose(renderedMessage, renderedBacktrace string) string {
	var b strings.Builder
	b.WriteString("I hit the following error in my program:\n\n")
	b.WriteString("```\n")
	b.WriteString(strings.TrimRight(renderedMessage, "\n"))
	b.WriteString("\n```\n\n")
	b.WriteString("Summarize what went wrong, where, and why. ")
	b.WriteString("Then suggest one or more concrete fixes.\n")

	if renderedBacktrace != "" {
		b.WriteString("\nHere is the backtrace, most useful frames included:\n\n")
		b.WriteString("```\n")
		b.WriteString(strings.TrimRight(renderedBacktrace, "\n"))
		b.WriteString("\n```\n")
	}

	out := b.String()
	if len(out) > maxPromptBytes {
		cut := maxPromptBytes
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
	}
	return out
}
