package main

import (
	"context"
	"fmt"

	"github.com/amirhosseinghanipour/orgauth/internal/config"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/orgauth/internal/logger"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug)
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Store != config.StorePostgres {
		return fmt.Errorf("migrate needs STORE=%s, got %q", config.StorePostgres, cfg.Store)
	}

	pool, err := postgres.NewPool(ctx, poolConfig(cfg.Database))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		return err
	}
	log.Info().Msg("migrations complete")
	return nil
}
