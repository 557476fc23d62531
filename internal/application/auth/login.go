package auth

import (
	"context"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

// decoyPassword is hashed once at construction so unknown emails cost one
// verification, same as a wrong password.
const decoyPassword = "orgauth-decoy-password"

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	User        *domain.User
}

type Login struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	issuer    ports.TokenIssuer
	decoyHash string
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) (*Login, error) {
	decoy, err := hasher.Hash(decoyPassword)
	if err != nil {
		return nil, err
	}
	return &Login{users: users, hasher: hasher, issuer: issuer, decoyHash: decoy}, nil
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domerrors.ErrAuthenticationFailed
	}
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.hasher.Verify(input.Password, uc.decoyHash)
		return nil, domerrors.ErrAuthenticationFailed
	}
	if !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrAuthenticationFailed
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, User: user}, nil
}
