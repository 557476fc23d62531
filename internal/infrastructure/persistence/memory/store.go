// Package memory keeps users, organizations and memberships in process
// memory. It mirrors the constraints of the postgres schema and is used by
// tests and STORE=memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

type membershipKey struct {
	org  domain.OrganizationID
	user domain.UserID
}

type Store struct {
	mu          sync.RWMutex
	users       map[domain.UserID]*domain.User
	emails      map[string]domain.UserID
	orgs        map[domain.OrganizationID]*domain.Organization
	memberships map[membershipKey]time.Time
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:       make(map[domain.UserID]*domain.User),
		emails:      make(map[string]domain.UserID),
		orgs:        make(map[domain.OrganizationID]*domain.Organization),
		memberships: make(map[membershipKey]time.Time),
		now:         time.Now,
	}
}

// Users and Organizations expose the store through the repository ports.
func (s *Store) Users() ports.UserRepository { return (*userRepo)(s) }

func (s *Store) Organizations() ports.OrganizationRepository { return (*orgRepo)(s) }

// Ping always succeeds; it lets the store back the health check.
func (s *Store) Ping(context.Context) error { return nil }

// MemberCount reports how many membership rows exist for the pair (0 or 1).
func (s *Store) MemberCount(orgID domain.OrganizationID, userID domain.UserID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.memberships[membershipKey{orgID, userID}]; ok {
		return 1
	}
	return 0
}

type userRepo Store

func (r *userRepo) CreateWithOrganization(_ context.Context, user *domain.User, org *domain.Organization) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return domerrors.ErrDuplicateEmail
	}
	s.users[user.ID] = cloneUser(user)
	s.emails[user.Email] = user.ID
	s.orgs[org.ID] = cloneOrganization(org)
	s.memberships[membershipKey{org.ID, user.ID}] = s.now()
	return nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, nil
	}
	return cloneUser(s.users[id]), nil
}

func (r *userRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

type orgRepo Store

func (r *orgRepo) CreateWithMember(_ context.Context, org *domain.Organization, owner domain.UserID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgs[org.ID] = cloneOrganization(org)
	s.memberships[membershipKey{org.ID, owner}] = s.now()
	return nil
}

func (r *orgRepo) GetByID(_ context.Context, id domain.OrganizationID) (*domain.Organization, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orgs[id]
	if !ok {
		return nil, nil
	}
	return cloneOrganization(o), nil
}

func (r *orgRepo) GetForMember(_ context.Context, id domain.OrganizationID, userID domain.UserID) (*domain.Organization, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orgs[id]
	if !ok {
		return nil, nil
	}
	if _, member := s.memberships[membershipKey{id, userID}]; !member {
		return nil, nil
	}
	return cloneOrganization(o), nil
}

func (r *orgRepo) ListForUser(_ context.Context, userID domain.UserID) ([]*domain.Organization, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Organization, 0)
	for key := range s.memberships {
		if key.user != userID {
			continue
		}
		if o, ok := s.orgs[key.org]; ok {
			out = append(out, cloneOrganization(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *orgRepo) IsMember(_ context.Context, id domain.OrganizationID, userID domain.UserID) (bool, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.memberships[membershipKey{id, userID}]
	return ok, nil
}

func (r *orgRepo) AddMember(_ context.Context, id domain.OrganizationID, userID domain.UserID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	key := membershipKey{id, userID}
	if _, ok := s.memberships[key]; ok {
		return nil
	}
	s.memberships[key] = s.now()
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.Phone != nil {
		p := *u.Phone
		c.Phone = &p
	}
	return &c
}

func cloneOrganization(o *domain.Organization) *domain.Organization {
	c := *o
	if o.Description != nil {
		d := *o.Description
		c.Description = &d
	}
	return &c
}

var (
	_ ports.UserRepository         = (*userRepo)(nil)
	_ ports.OrganizationRepository = (*orgRepo)(nil)
)
