package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrganizationID is a value object for organization identity.
type OrganizationID struct{ uuid.UUID }

// NewOrganizationID creates a new OrganizationID from uuid.
func NewOrganizationID(id uuid.UUID) OrganizationID { return OrganizationID{UUID: id} }

// ParseOrganizationID parses the canonical string form produced by String.
func ParseOrganizationID(s string) (OrganizationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return OrganizationID{}, err
	}
	return NewOrganizationID(id), nil
}

// String returns the canonical string form.
func (o OrganizationID) String() string { return o.UUID.String() }

// Organization groups users. Users belong via organization_members.
type Organization struct {
	ID          OrganizationID
	Name        string
	Description *string
	CreatedAt   time.Time
}

// OrganizationMember links a user to an org. The pair is unique.
type OrganizationMember struct {
	OrganizationID OrganizationID
	UserID         UserID
	CreatedAt      time.Time
}

// DefaultOrganizationName is the name of the organization created for a new user.
func DefaultOrganizationName(firstName string) string {
	return fmt.Sprintf("%s's Organisation", firstName)
}
