package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Maxxjx/ProjectPulse-sub001/internal/config"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/db"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/infra/logger"
	"github.com/Maxxjx/ProjectPulse-sub001/internal/modules/mockstore"
)

var seedAfterMigrate bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Database.DSN == "" {
			return errors.New("database.dsn is empty")
		}
		log, err := logger.New(cfg.Log.Level)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		d, err := db.Open(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		p := db.NewProviderWithDB(d)
		defer p.Close()

		if err := db.Migrate(d); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Sugar().Infow("schema up to date", "driver", cfg.Database.Driver)

		if !seedAfterMigrate {
			return nil
		}
		store, err := mockstore.NewSeeded()
		if err != nil {
			return err
		}
		if err := db.Seed(d, store); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Sugar().Infow("sample data loaded",
			"users", store.Users.Len(),
			"projects", store.Projects.Len(),
			"tasks", store.Tasks.Len())
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedAfterMigrate, "seed", false, "load the sample dataset into an empty database")
}
