package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/bopomofo/internal/cli"
	"codeberg.org/snonux/bopomofo/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command with the subcommand handlers
	rootCmd := cli.CreateRootCommand(flags, cli.Handlers{
		Download: func(cmd *cobra.Command, args []string) error {
			return newProcessor(flags).Download(cmd.Context())
		},
		Generate: func(cmd *cobra.Command, args []string) error {
			return newProcessor(flags).Generate(cmd.Context())
		},
		Anki: func(cmd *cobra.Command, args []string) error {
			outputPath, err := newProcessor(flags).ExportAnki()
			if err != nil {
				return err
			}
			fmt.Printf("Anki package created: %s\n", outputPath)
			return nil
		},
	})

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newProcessor(flags *cli.Flags) *processor.Processor {
	logger, err := cli.NewLogger(flags.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
	}
	return processor.NewProcessor(flags, logger)
}
