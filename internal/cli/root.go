package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aptaudit",
		Short: "Audit pending Debian package upgrades with an LLM",
		Long: `Aptaudit inspects the host's upgradable apt packages and asks a language
model whether each upgrade carries breaking changes, checking the package's
configuration file when one is found.

The verdicts are collected into a Markdown or HTML report that is mailed to
an operator or written to disk.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewRunCmd())

	return rootCmd
}
