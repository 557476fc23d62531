package organization

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/application/validation"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/google/uuid"
)

// CreateOrganizationInput carries the caller and the new organization's fields.
type CreateOrganizationInput struct {
	OwnerID     domain.UserID `json:"-"`
	Name        string        `json:"name" validate:"required"`
	Description *string       `json:"description"`
}

// CreateOrganization creates an organization with the caller as its first member.
type CreateOrganization struct {
	users ports.UserRepository
	orgs  ports.OrganizationRepository
	now   func() time.Time
}

// NewCreateOrganization builds the use case.
func NewCreateOrganization(users ports.UserRepository, orgs ports.OrganizationRepository) *CreateOrganization {
	return &CreateOrganization{users: users, orgs: orgs, now: time.Now}
}

// Execute fails with ErrOrganizationConflict when the owner already belongs to
// an organization of the same name.
func (uc *CreateOrganization) Execute(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error) {
	if verr := validation.Struct(input); verr != nil {
		return nil, verr
	}
	owner, err := uc.users.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domerrors.ErrUserNotFound
	}
	existing, err := uc.orgs.ListForUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	for _, o := range existing {
		if o.Name == input.Name {
			return nil, domerrors.ErrOrganizationConflict
		}
	}
	org := &domain.Organization{
		ID:          domain.NewOrganizationID(uuid.New()),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.orgs.CreateWithMember(ctx, org, owner.ID); err != nil {
		return nil, err
	}
	return org, nil
}
