package main

import (
	"database/sql"

	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or revert database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigration(migration.Runner.Up)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the most recent migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMigration(migration.Runner.Down)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigration(step func(migration.Runner, *sql.DB) error) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := dbpostgres.OpenSQL(cfg.Database)
	if err != nil {
		return err
	}
	return step(migration.Runner{Dir: cfg.Database.MigrationsDir, Logger: log}, db)
}
