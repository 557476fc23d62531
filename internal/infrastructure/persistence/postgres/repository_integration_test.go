//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/persistence/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "orgauth",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pool, err := NewPool(ctx, &PoolConfig{
		ConnString: fmt.Sprintf("postgres://test:test@%s:%s/orgauth?sslmode=disable", host, port.Port()),
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(pool))
	// second run is a no-op
	require.NoError(t, Migrate(pool))

	return pool
}

func newUserWithOrg(email string) (*domain.User, *domain.Organization) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	phone := "555-0100"
	u := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		FirstName:    "John",
		LastName:     "Doe",
		Email:        email,
		PasswordHash: "hash",
		Phone:        &phone,
		CreatedAt:    now,
	}
	o := &domain.Organization{
		ID:        domain.NewOrganizationID(uuid.New()),
		Name:      domain.DefaultOrganizationName(u.FirstName),
		CreatedAt: now,
	}
	return u, o
}

func TestIntegration_Repositories(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgresContainer(t, ctx)
	q := db.New(pool)
	users := NewUserRepository(q, pool)
	orgs := NewOrganizationRepository(q, pool)

	john, johnOrg := newUserWithOrg("john@example.com")
	require.NoError(t, users.CreateWithOrganization(ctx, john, johnOrg))

	t.Run("lookup by email and id", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, john.ID, got.ID)
		require.NotNil(t, got.Phone)
		assert.Equal(t, "555-0100", *got.Phone)

		got, err = users.GetByID(ctx, john.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "john@example.com", got.Email)

		missing, err := users.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate email rolls back", func(t *testing.T) {
		dup, dupOrg := newUserWithOrg("john@example.com")
		err := users.CreateWithOrganization(ctx, dup, dupOrg)
		require.ErrorIs(t, err, domerrors.ErrDuplicateEmail)

		o, err := orgs.GetByID(ctx, dupOrg.ID)
		require.NoError(t, err)
		assert.Nil(t, o)
	})

	t.Run("default organization membership", func(t *testing.T) {
		list, err := orgs.ListForUser(ctx, john.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "John's Organisation", list[0].Name)

		ok, err := orgs.IsMember(ctx, johnOrg.ID, john.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("add member is idempotent", func(t *testing.T) {
		jane, janeOrg := newUserWithOrg("jane@example.com")
		jane.FirstName = "Jane"
		janeOrg.Name = domain.DefaultOrganizationName("Jane")
		require.NoError(t, users.CreateWithOrganization(ctx, jane, janeOrg))

		o, err := orgs.GetForMember(ctx, johnOrg.ID, jane.ID)
		require.NoError(t, err)
		assert.Nil(t, o)

		require.NoError(t, orgs.AddMember(ctx, johnOrg.ID, jane.ID))
		require.NoError(t, orgs.AddMember(ctx, johnOrg.ID, jane.ID))

		var count int
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM organization_members WHERE organization_id = $1 AND user_id = $2`,
			johnOrg.ID.UUID, jane.ID.UUID).Scan(&count))
		assert.Equal(t, 1, count)

		o, err = orgs.GetForMember(ctx, johnOrg.ID, jane.ID)
		require.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, johnOrg.Name, o.Name)
	})

	t.Run("create organization with member", func(t *testing.T) {
		desc := "Side project"
		org := &domain.Organization{
			ID:          domain.NewOrganizationID(uuid.New()),
			Name:        "Acme",
			Description: &desc,
			CreatedAt:   time.Now().UTC(),
		}
		require.NoError(t, orgs.CreateWithMember(ctx, org, john.ID))

		got, err := orgs.GetForMember(ctx, org.ID, john.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.Description)
		assert.Equal(t, "Side project", *got.Description)

		list, err := orgs.ListForUser(ctx, john.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}
