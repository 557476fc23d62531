package postgres

import (
	"context"

	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/persistence/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

func inTx(ctx context.Context, pool *pgxpool.Pool, q *db.Queries, fn func(*db.Queries) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return mapPostgresError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit
	if err := fn(q.WithTx(tx)); err != nil {
		return err
	}
	return mapPostgresError(tx.Commit(ctx))
}
