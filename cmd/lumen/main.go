package main

import (
	"os"

	"github.com/spf13/cobra"

	"lumen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "lumen language resolution engine",
	Long:  `lumen drives the query-driven compilation engine: lazy name resolution, constant evaluation, and field-access bytecode emission`,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
