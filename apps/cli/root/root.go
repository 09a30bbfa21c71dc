package root

import (
	"github.com/spf13/cobra"
)

// rootCmd is the base command for the BFP records admin CLI. Subcommands
// (workbook, archive) are attached here.
var rootCmd = &cobra.Command{
	Use:           "bfp",
	Short:         "BFP records admin CLI",
	Long:          "Administrative utilities for the BFP inspection records store (workbook export/import, month close).",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the mutable root command for wiring from subpackages.
func Root() *cobra.Command {
	return rootCmd
}
