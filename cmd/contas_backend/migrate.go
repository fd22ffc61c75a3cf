package main

import (
	"errors"

	"github.com/SscSPs/contas_app/internal/platform/config"
	"github.com/SscSPs/contas_app/internal/repositories/database/pgsql"
	"github.com/spf13/cobra"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(false)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations (all of them unless --steps is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(true)
	},
}

func runMigrations(down bool) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if cfg.StorageBackend != config.StoragePostgres {
		return errors.New("migrations only apply to the postgres storage backend")
	}
	return pgsql.Migrate(cfg.DatabaseURL, down, migrateSteps, logger)
}

func init() {
	migrateCmd.PersistentFlags().IntVar(&migrateSteps, "steps", 0, "number of migrations to apply or roll back (0 means all)")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
