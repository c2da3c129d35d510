// Package cli implements the whaapy-ai command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/saymetristan/whaapy-ai/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// built in PersistentPreRunE
	log *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whaapy-ai",
		Short: "whaapy-ai — agent configuration and usage analytics service",
		Long:  "whaapy-ai stores per-business AI agent configuration and LLM usage records, serving them over an authenticated HTTP API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level, "pretty")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional, env vars take precedence)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newPricingCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
