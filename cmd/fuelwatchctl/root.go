package main

import (
	"fmt"
	"log/slog"
	"os"

	"fuelwatch/config"
	logs "fuelwatch/internal/infra/log"

	"github.com/spf13/cobra"
)

var flagQuiet bool

var rootCmd = &cobra.Command{
	Use:          "fuelwatchctl",
	Short:        "Fuel watch operator CLI",
	Long:         "Run reminder checks and evaluate service reminders from the command line.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress log output")
}

// loadRuntime reads the config and builds the logger shared by the commands.
func loadRuntime() (*config.Config, *slog.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logs.NewWithWriter(cfg, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	if flagQuiet {
		logger = slog.New(slog.DiscardHandler)
	}

	return cfg, logger, nil
}
