package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

// AccessTokenTTL is the lifetime of every access token.
const AccessTokenTTL = 24 * time.Hour

// TokenIssuer implements ports.TokenIssuer with HS256.
type TokenIssuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Option configures a TokenIssuer.
type Option func(*TokenIssuer)

// WithIssuer sets the iss claim. Tokens from other issuers are rejected.
func WithIssuer(issuer string) Option {
	return func(t *TokenIssuer) {
		t.issuer = issuer
	}
}

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

func NewTokenIssuer(secret []byte, opts ...Option) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}
	t := &TokenIssuer{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *TokenIssuer) IssueAccessToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := t.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt(now)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// expiresAt rounds issue time plus TTL up to the next whole second, since
// exp is encoded in seconds.
func expiresAt(issued time.Time) time.Time {
	exp := issued.Add(AccessTokenTTL)
	if whole := exp.Truncate(time.Second); whole.Before(exp) {
		return whole.Add(time.Second)
	}
	return exp
}

// ValidateAccessToken accepts a token until now > exp.
func (t *TokenIssuer) ValidateAccessToken(tokenString string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
		// jwt rejects now == exp; the leeway is bounded by the explicit check below.
		jwt.WithLeeway(time.Second),
	}
	if t.issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domerrors.ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", domerrors.ErrMalformedToken, err)
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", domerrors.ErrMalformedToken
	}
	if t.now().After(claims.ExpiresAt.Time) {
		return "", domerrors.ErrExpiredToken
	}
	return claims.UserID, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
