package organization

import (
	"context"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

// ListOrganizations returns every organization the user belongs to.
type ListOrganizations struct {
	users ports.UserRepository
	orgs  ports.OrganizationRepository
}

func NewListOrganizations(users ports.UserRepository, orgs ports.OrganizationRepository) *ListOrganizations {
	return &ListOrganizations{users: users, orgs: orgs}
}

func (uc *ListOrganizations) Execute(ctx context.Context, userID domain.UserID) ([]*domain.Organization, error) {
	if err := requireUser(ctx, uc.users, userID, domerrors.ErrUserNotFound); err != nil {
		return nil, err
	}
	return uc.orgs.ListForUser(ctx, userID)
}
