package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hotchpotch/NEKO-translate/internal/cli"
	"github.com/hotchpotch/NEKO-translate/internal/models"
	"github.com/hotchpotch/NEKO-translate/internal/processor"
)

func main() {
	// Diagnostics go to stderr; stdout carries only the translation
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}
	rootCmd.SilenceUsage = true

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := context.Background()

	// Overlay config-file values on flags the user left at defaults
	cli.ApplyConfig(cmd, flags)

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(flags.BaseURL, cli.GetAPIKey())
		return lister.ListAvailableModels(ctx)
	}

	// Create processor and run one translation
	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}
	return proc.Run(ctx)
}
