package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *Store, first, email string) (*domain.User, *domain.Organization) {
	t.Helper()
	u := &domain.User{
		ID:        domain.NewUserID(uuid.New()),
		FirstName: first,
		LastName:  "Doe",
		Email:     email,
		CreatedAt: time.Now(),
	}
	o := &domain.Organization{
		ID:        domain.NewOrganizationID(uuid.New()),
		Name:      domain.DefaultOrganizationName(first),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.Users().CreateWithOrganization(context.Background(), u, o))
	return u, o
}

func TestStore_UniqueEmail(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "John", "john@example.com")

	u := &domain.User{ID: domain.NewUserID(uuid.New()), Email: "john@example.com"}
	o := &domain.Organization{ID: domain.NewOrganizationID(uuid.New())}
	err := s.Users().CreateWithOrganization(context.Background(), u, o)
	require.ErrorIs(t, err, domerrors.ErrDuplicateEmail)

	got, err := s.Organizations().GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "rejected registration must not leave an organization behind")
}

func TestStore_ConcurrentRegistrationSameEmail(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := &domain.User{ID: domain.NewUserID(uuid.New()), Email: "race@example.com"}
			o := &domain.Organization{ID: domain.NewOrganizationID(uuid.New())}
			errs[i] = s.Users().CreateWithOrganization(context.Background(), u, o)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domerrors.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestStore_Lookups(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	john, johnOrg := seedUser(t, s, "John", "john@example.com")

	got, err := s.Users().GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, john.ID, got.ID)

	missing, err := s.Users().GetByID(ctx, domain.NewUserID(uuid.New()))
	require.NoError(t, err)
	assert.Nil(t, missing)

	got.FirstName = "mutated"
	again, err := s.Users().GetByID(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", again.FirstName)

	org, err := s.Organizations().GetForMember(ctx, johnOrg.ID, john.ID)
	require.NoError(t, err)
	require.NotNil(t, org)
	assert.Equal(t, "John's Organisation", org.Name)
}

func TestStore_AddMemberIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, johnOrg := seedUser(t, s, "John", "john@example.com")
	jane, _ := seedUser(t, s, "Jane", "jane@example.com")

	member, err := s.Organizations().IsMember(ctx, johnOrg.ID, jane.ID)
	require.NoError(t, err)
	assert.False(t, member)

	org, err := s.Organizations().GetForMember(ctx, johnOrg.ID, jane.ID)
	require.NoError(t, err)
	assert.Nil(t, org)

	require.NoError(t, s.Organizations().AddMember(ctx, johnOrg.ID, jane.ID))
	require.NoError(t, s.Organizations().AddMember(ctx, johnOrg.ID, jane.ID))
	assert.Equal(t, 1, s.MemberCount(johnOrg.ID, jane.ID))

	list, err := s.Organizations().ListForUser(ctx, jane.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStore_ListForUserEmpty(t *testing.T) {
	s := NewStore()
	list, err := s.Organizations().ListForUser(context.Background(), domain.NewUserID(uuid.New()))
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
