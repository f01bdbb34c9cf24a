package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/brokkr/pkg/config"
	"github.com/ssargent/brokkr/pkg/container"
	"github.com/ssargent/brokkr/pkg/schema"
	"github.com/ssargent/brokkr/pkg/transcode"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <schema-file> <input-file> <output-file>",
	Short: "Convert newline-delimited JSON into a binary container",
	Long: `Convert newline-delimited JSON records into a Brokkr container.

Reads a record schema, coerces each input line onto it, and writes the
encoded records into a self-describing binary container file. An existing
output file is replaced.

Example:
  brokkr convert clickstream-schema.json events.json events.brkc`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, inputPath, outputPath := args[0], args[1], args[2]

		cfg := config.DefaultConfig()
		if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		schemaText, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("reading schema: %w", err)
		}
		s, err := schema.Parse(schemaText)
		if err != nil {
			return err
		}

		input, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer func() {
			_ = input.Close()
		}()

		writer := container.NewWriter(container.WriterConfig{
			FilePath:   outputPath,
			BufferSize: cfg.BufferSize,
			Fsync:      cfg.Fsync,
		})

		pipeline := transcode.New(s, writer, cfg)
		stats, err := pipeline.Run(cmd.Context(), input)
		if err != nil {
			return fmt.Errorf("run %s: %w", pipeline.RunID(), err)
		}

		cmd.Printf("run %s: %d records read, %d written in %d blocks", pipeline.RunID(), stats.RecordsRead, stats.RecordsWritten, stats.BlocksWritten)
		if stats.RecordsSkipped > 0 {
			cmd.Printf(", %d skipped", stats.RecordsSkipped)
		}
		cmd.Printf("\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
