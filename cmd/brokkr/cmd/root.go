package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brokkr",
	Short: "Brokkr - schema-driven JSON to binary container transcoder",
	Long: `Brokkr converts newline-delimited JSON records into a compact,
strongly-typed binary container, driven by a declarative record schema.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a yaml run configuration (optional)")
}
