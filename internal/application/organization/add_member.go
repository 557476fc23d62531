package organization

import (
	"context"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

// AddMemberInput identifies who is adding whom to which organization.
type AddMemberInput struct {
	ActingUserID domain.UserID
	OrgID        domain.OrganizationID
	TargetUserID domain.UserID
}

// AddMember links a user to an organization the acting user already belongs
// to. Adding an existing member succeeds without creating a second link.
type AddMember struct {
	users ports.UserRepository
	orgs  ports.OrganizationRepository
}

func NewAddMember(users ports.UserRepository, orgs ports.OrganizationRepository) *AddMember {
	return &AddMember{users: users, orgs: orgs}
}

// Execute checks acting user, target user, organization and membership in
// that order; the first failure wins.
func (uc *AddMember) Execute(ctx context.Context, input AddMemberInput) error {
	if err := requireUser(ctx, uc.users, input.ActingUserID, domerrors.ErrUserNotFound); err != nil {
		return err
	}
	if err := requireUser(ctx, uc.users, input.TargetUserID, domerrors.ErrTargetUserNotFound); err != nil {
		return err
	}
	org, err := uc.orgs.GetByID(ctx, input.OrgID)
	if err != nil {
		return err
	}
	if org == nil {
		return domerrors.ErrOrganizationNotFound
	}
	member, err := uc.orgs.IsMember(ctx, input.OrgID, input.ActingUserID)
	if err != nil {
		return err
	}
	if !member {
		return domerrors.ErrNotAMember
	}
	return uc.orgs.AddMember(ctx, input.OrgID, input.TargetUserID)
}
