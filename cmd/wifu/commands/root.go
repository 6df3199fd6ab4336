// Package commands implements the wifu CLI (§6): a root command carrying
// global logging flags, plus run and config subcommands.
package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kerdl/wifu-go/internal/logging"
	"github.com/kerdl/wifu-go/internal/paths"
)

const cliExecutable = "wifu"

// NewCommand constructs the root wifu command.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		verbosityCount int
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "wifu keeps the host connected to the best whitelisted Wi-Fi network",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose || verbosityCount >= 2 {
				level = zerolog.DebugLevel
			}
			logging.Configure(level.String(), true)
			paths.SetConfigPath(configFile)
		},
	}

	cmd.SilenceUsage = true
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (default ./wifu-data/cfg.json)")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}
