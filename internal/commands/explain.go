package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/faultline/internal/prompt"
	"github.com/dotcommander/faultline/internal/render"
)

// NewExplainCmd creates the explain command: run an error message (and
// optional trace) through the compose → ask → render pipeline without a
// live panic.
func NewExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [file]",
		Short: "Explain an error message read from a file or stdin",
		Long:  "Reads an error message (first line) and optional backtrace (remaining lines) from the given file or stdin, asks the model for an explanation, and renders the answer panel.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readExplainInput(args)
			if err != nil {
				return cmdErr(err)
			}

			message, backtrace := splitErrorText(text)
			if message == "" {
				return cmdErr(errors.New("no error text provided"))
			}

			width, _ := cmd.Flags().GetInt("width")
			if width == 0 {
				width = render.DetectWidth(os.Stderr)
			}

			rc := render.NewContext(width)
			promptText := prompt.Compose(message, backtrace)
			if err := render.NewAsker().Ask(os.Stderr, rc, promptText); err != nil {
				return cmdErr(fmt.Errorf("explain: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().Int("width", 0, "Override terminal width (default: detect)")
	return cmd
}

func readExplainInput(args []string) (string, error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(b), nil
	}

	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

// splitErrorText treats the first line as the error message and any
// remaining lines as the backtrace.
func splitErrorText(text string) (message, backtrace string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}
	line, rest, found := strings.Cut(text, "\n")
	if !found {
		return line, ""
	}
	return strings.TrimSpace(line), strings.TrimSpace(rest)
}
