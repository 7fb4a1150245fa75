package main

import (
	"context"
	"fmt"
	"time"

	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedDemo bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the skill catalog and optional demo data",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "Also load demo employees, clients and projects")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() { _ = db.Close() }()

	seeders := seeder.Defaults()
	if seedDemo {
		seeders = append(seeders, seeder.Demo()...)
	}

	r := seeder.Runner{Seeders: seeders, Logger: log}
	if err := r.Run(ctx, db); err != nil {
		return err
	}
	log.Info("seed completed", zap.Int("seeders", len(seeders)))
	return nil
}
