package ports

import (
	"context"

	"github.com/amirhosseinghanipour/orgauth/internal/domain"
)

// UserRepository defines persistence for users.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	// CreateWithOrganization persists the user, its default organization and the
	// membership linking them in one transaction. A duplicate email must surface
	// as errors.ErrDuplicateEmail even when detected by the storage constraint.
	CreateWithOrganization(ctx context.Context, user *domain.User, org *domain.Organization) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
}

// OrganizationRepository defines persistence for organizations and the membership relation.
// Lookups return (nil, nil) when no row matches.
type OrganizationRepository interface {
	// CreateWithMember persists the organization and links owner to it in one transaction.
	CreateWithMember(ctx context.Context, org *domain.Organization, owner domain.UserID) error
	GetByID(ctx context.Context, orgID domain.OrganizationID) (*domain.Organization, error)
	// GetForMember returns the organization only when userID is a member of it.
	GetForMember(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) (*domain.Organization, error)
	ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Organization, error)
	IsMember(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) (bool, error)
	// AddMember links userID to orgID. Adding an existing member is a no-op.
	AddMember(ctx context.Context, orgID domain.OrganizationID, userID domain.UserID) error
}
