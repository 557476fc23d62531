package auth

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/google/uuid"
)

type RegisterUserInput struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     string  `json:"email" validate:"required"`
	Password  string  `json:"password" validate:"required"`
	Phone     *string `json:"phone"`
}

type RegisterUserResult struct {
	User         *domain.User
	Organization *domain.Organization
	AccessToken  string
}

type RegisterUser struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	now    func() time.Time
}

func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher, issuer: issuer, now: time.Now}
}

// Execute creates the user together with its default organization. The
// email lookup is a fast path only; the store's uniqueness guard decides.
func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	if verr := ValidateRegisterInput(input); verr != nil {
		return nil, verr
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrDuplicateEmail
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		CreatedAt:    now,
	}
	org := &domain.Organization{
		ID:        domain.NewOrganizationID(uuid.New()),
		Name:      domain.DefaultOrganizationName(input.FirstName),
		CreatedAt: now,
	}
	if err := uc.users.CreateWithOrganization(ctx, user, org); err != nil {
		return nil, err
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &RegisterUserResult{User: user, Organization: org, AccessToken: token}, nil
}
