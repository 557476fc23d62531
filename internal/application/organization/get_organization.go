package organization

import (
	"context"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

// GetOrganizationInput names the caller and the organization asked for.
type GetOrganizationInput struct {
	UserID domain.UserID
	OrgID  domain.OrganizationID
}

// GetOrganization returns an organization only to its members. Everyone else
// gets ErrOrganizationNotFound whether or not it exists.
type GetOrganization struct {
	users ports.UserRepository
	orgs  ports.OrganizationRepository
}

func NewGetOrganization(users ports.UserRepository, orgs ports.OrganizationRepository) *GetOrganization {
	return &GetOrganization{users: users, orgs: orgs}
}

func (uc *GetOrganization) Execute(ctx context.Context, input GetOrganizationInput) (*domain.Organization, error) {
	if err := requireUser(ctx, uc.users, input.UserID, domerrors.ErrUserNotFound); err != nil {
		return nil, err
	}
	org, err := uc.orgs.GetForMember(ctx, input.OrgID, input.UserID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domerrors.ErrOrganizationNotFound
	}
	return org, nil
}

func requireUser(ctx context.Context, users ports.UserRepository, id domain.UserID, missing error) error {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return missing
	}
	return nil
}
