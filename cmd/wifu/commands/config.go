package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerdl/wifu-go/internal/cfg"
)

// NewConfigCommand builds "wifu config", grouping config subcommands.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the on-disk configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := cfg.NewManager()
			if err := manager.Load(); err != nil {
				if errors.Is(err, cfg.ErrFirstRun) {
					fmt.Println("no configuration existed yet; defaults were written")
					return nil
				}
				return err
			}

			b, err := json.MarshalIndent(manager.Get(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		},
	}
}
