package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/faultline/internal/credential"
	"github.com/dotcommander/faultline/internal/output"
)

// NewKeyCmd creates the key command with subcommands.
func NewKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API key",
		Long:  "Store, clear, or inspect the API key used for error explanations. Keys are stored in plaintext in the local preferences database.",
	}

	cmd.AddCommand(newKeySetCmd())
	cmd.AddCommand(newKeyClearCmd())
	cmd.AddCommand(newKeyStatusCmd())

	return cmd
}

func newKeySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <value>",
		Short: "Store an API key in the preferences database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := strings.TrimSpace(args[0])
			if value == "" {
				return cmdErr(errors.New("key value must not be empty"))
			}

			if err := credential.NewResolver().Set(value); err != nil {
				return cmdErr(fmt.Errorf("store key: %w", err))
			}

			type resp struct {
				Stored bool `json:"stored"`
			}
			return output.PrintSuccess(resp{Stored: true})
		},
	}
}

func newKeyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key (no-op if absent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credential.NewResolver().Clear(); err != nil {
				return cmdErr(fmt.Errorf("clear key: %w", err))
			}

			type resp struct {
				Cleared bool `json:"cleared"`
			}
			return output.PrintSuccess(resp{Cleared: true})
		},
	}
}

func newKeyStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report where a key would be resolved from (never prints the key)",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := credential.NewResolver()
			cred := resolver.Get()

			type resp struct {
				Found  bool   `json:"found"`
				Source string `json:"source"`
				EnvVar string `json:"env_var"`
			}
			return output.PrintSuccess(resp{
				Found:  cred.Found(),
				Source: string(cred.Source),
				EnvVar: resolver.EnvVar,
			})
		},
	}
}
