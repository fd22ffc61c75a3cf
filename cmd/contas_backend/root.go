package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/contas_app/internal/platform/config"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "contas_backend",
	Short:   "contas backend: bills, installment plans and bank ledgers",
	Version: version,
	// Running without a subcommand starts the server, as the binary always did.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and installs the JSON logger as default.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}
