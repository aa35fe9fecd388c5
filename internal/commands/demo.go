package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/faultline/pkg/hook"
)

// NewDemoCmd creates the demo command: deliberately fail under an installed
// Reporter so users can see the full output end to end.
func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Trigger a deliberate failure to showcase the error hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")

			reporter := hook.Install(hook.DefaultOptions())
			defer reporter.Recover()

			switch kind {
			case "panic":
				explode(3)
			case "value":
				panic(&demoValueError{value: 5, bound: 3})
			case "overflow":
				// A real stack overflow is a fatal runtime throw and cannot be
				// recovered, so the demo deepens the stack and panics with an
				// overflow-shaped error to show the truncated trace.
				deepen(60)
			default:
				return cmdErr(fmt.Errorf("unknown demo kind %q (supported: panic, value, overflow)", kind))
			}
			return nil
		},
	}

	cmd.Flags().String("kind", "panic", "Failure kind to demonstrate (panic, value, overflow)")
	return cmd
}

// explode builds a few real stack frames before panicking so the demo trace
// has something to show.
func explode(depth int) {
	if depth == 0 {
		panic("demo: something went intentionally wrong")
	}
	explode(depth - 1)
}

func deepen(depth int) {
	if depth == 0 {
		panic(demoOverflowError{})
	}
	deepen(depth - 1)
}

// demoOverflowError mimics the runtime's stack-overflow error closely enough
// to trigger the reporter's trace truncation.
type demoOverflowError struct{}

func (demoOverflowError) Error() string { return "stack overflow (simulated)" }

func (demoOverflowError) RuntimeError() {}

type demoValueError struct {
	value, bound int
}

func (e *demoValueError) Error() string {
	return fmt.Sprintf("value %d exceeds bound %d", e.value, e.bound)
}

func (e *demoValueError) TypeName() string { return "ValueOutOfRange" }
