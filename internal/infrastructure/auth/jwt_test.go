package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

var testSecret = []byte("test-secret-key-min-32-bytes-long")

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestIssuer(t *testing.T, clock *fakeClock) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testSecret, WithIssuer("orgauth"), WithClock(clock.Now))
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuer_requiresSecret(t *testing.T) {
	issuer, err := NewTokenIssuer(nil)
	require.Error(t, err)
	require.Nil(t, issuer)
}

func TestTokenIssuer_roundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)

	token, err := issuer.IssueAccessToken("user-123")
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	userID, err := issuer.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestTokenIssuer_claims(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(t, &fakeClock{t: issuedAt})

	token, err := issuer.IssueAccessToken("user-123")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims["userId"])
	require.Equal(t, "user-123", claims["sub"])
	require.EqualValues(t, issuedAt.Add(24*time.Hour).Unix(), claims["exp"])
}

func TestTokenIssuer_expiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	issuer := newTestIssuer(t, clock)

	token, err := issuer.IssueAccessToken("user-123")
	require.NoError(t, err)

	clock.t = issuedAt.Add(24*time.Hour - time.Second)
	_, err = issuer.ValidateAccessToken(token)
	require.NoError(t, err, "token must be accepted just before T+24h")

	clock.t = issuedAt.Add(24 * time.Hour)
	_, err = issuer.ValidateAccessToken(token)
	require.NoError(t, err, "token must be accepted at exactly T+24h")

	clock.t = issuedAt.Add(24*time.Hour + time.Millisecond)
	_, err = issuer.ValidateAccessToken(token)
	require.ErrorIs(t, err, domerrors.ErrExpiredToken)

	clock.t = issuedAt.Add(24*time.Hour + time.Second)
	_, err = issuer.ValidateAccessToken(token)
	require.ErrorIs(t, err, domerrors.ErrExpiredToken)
}

func TestTokenIssuer_expirySubSecondIssue(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 900_000_000, time.UTC)
	clock := &fakeClock{t: issuedAt}
	issuer := newTestIssuer(t, clock)

	token, err := issuer.IssueAccessToken("user-123")
	require.NoError(t, err)

	for _, at := range []time.Duration{
		24*time.Hour - 500*time.Millisecond,
		24 * time.Hour,
	} {
		clock.t = issuedAt.Add(at)
		_, err = issuer.ValidateAccessToken(token)
		require.NoError(t, err, "token must be accepted at T+%s", at)
	}

	clock.t = issuedAt.Add(24*time.Hour + 2*time.Second)
	_, err = issuer.ValidateAccessToken(token)
	require.ErrorIs(t, err, domerrors.ErrExpiredToken)
}

func TestTokenIssuer_malformed(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestIssuer(t, clock)

	other, err := NewTokenIssuer([]byte("another-secret"), WithIssuer("orgauth"), WithClock(clock.Now))
	require.NoError(t, err)
	foreign, err := other.IssueAccessToken("user-123")
	require.NoError(t, err)

	wrongIssuer, err := NewTokenIssuer(testSecret, WithIssuer("someone-else"), WithClock(clock.Now))
	require.NoError(t, err)
	otherIss, err := wrongIssuer.IssueAccessToken("user-123")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": "user-123",
		"exp":    clock.t.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "orgauth",
		"exp": clock.t.Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":    "orgauth",
		"userId": "user-123",
	}).SignedString(testSecret)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":         "not-a-token",
		"empty":           "",
		"wrong secret":    foreign,
		"wrong issuer":    otherIss,
		"alg none":        noneToken,
		"missing userId":  noUser,
		"missing exp":     noExp,
		"truncated":       foreign[:len(foreign)-4],
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.ValidateAccessToken(token)
			require.ErrorIs(t, err, domerrors.ErrMalformedToken)
		})
	}
}
