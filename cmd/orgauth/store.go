package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/config"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/persistence/db"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/security"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/webhook"
)

type store struct {
	users  ports.UserRepository
	orgs   ports.OrganizationRepository
	pinger handlers.Pinger
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		mem := memory.NewStore()
		return &store{users: mem.Users(), orgs: mem.Organizations(), pinger: mem, close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, poolConfig(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	q := db.New(pool)
	return &store{
		users:  postgres.NewUserRepository(q, pool),
		orgs:   postgres.NewOrganizationRepository(q, pool),
		pinger: pool,
		close:  pool.Close,
	}, nil
}

func poolConfig(c config.DatabaseConfig) *postgres.PoolConfig {
	return &postgres.PoolConfig{
		ConnString:      c.URL,
		MaxConns:        c.MaxConns,
		MinConns:        c.MinConns,
		MaxConnLifetime: c.MaxConnLifetime,
		MaxConnIdleTime: c.MaxConnIdleTime,
	}
}

func newHasher(c config.HasherConfig) ports.PasswordHasher {
	argon := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      c.Argon2.Memory,
		Iterations:  c.Argon2.Iterations,
		Parallelism: c.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	bc := security.NewBcryptHasher(c.BcryptCost)
	var primary ports.PasswordHasher = argon
	if c.Kind == config.HasherBcrypt {
		primary = bc
	}
	return security.NewMultiHasher(primary, argon, bc)
}

func newAuditSink(c config.AuditConfig) ports.AuditSink {
	if c.WebhookURL == "" {
		return webhook.Discard{}
	}
	return webhook.NewAuditWebhook(c.WebhookURL, webhook.WithSecret(c.WebhookSecret))
}
