package postgres

import (
	"errors"
	"testing"

	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPostgresError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		require.NoError(t, mapPostgresError(nil))
	})

	t.Run("non postgres error passes through", func(t *testing.T) {
		base := errors.New("boom")
		assert.Same(t, base, mapPostgresError(base))
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := mapPostgresError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: usersEmailKey})
		assert.ErrorIs(t, err, domerrors.ErrDuplicateEmail)
	})

	t.Run("other unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "organization_members_pkey"}
		err := mapPostgresError(pgErr)
		assert.NotErrorIs(t, err, domerrors.ErrDuplicateEmail)
		assert.ErrorContains(t, err, "organization_members_pkey")

		var got *pgconn.PgError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, pgerrcode.UniqueViolation, got.Code)
	})

	t.Run("connection failure", func(t *testing.T) {
		err := mapPostgresError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})
		assert.ErrorContains(t, err, "database connection error")
	})

	t.Run("unknown code", func(t *testing.T) {
		err := mapPostgresError(&pgconn.PgError{Code: "XX000", Message: "internal"})
		assert.ErrorContains(t, err, "postgres error [XX000]")
	})
}
