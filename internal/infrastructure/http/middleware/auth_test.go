package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/auth"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorsBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func newTestValidator(t *testing.T, now func() time.Time) (*AuthValidator, *auth.TokenIssuer) {
	t.Helper()
	issuer, err := auth.NewTokenIssuer([]byte("test-secret"), auth.WithClock(now))
	require.NoError(t, err)
	return NewAuthValidator(issuer, zerolog.Nop()), issuer
}

func TestAuthValidator(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	v, issuer := newTestValidator(t, clock)

	token, err := issuer.IssueAccessToken("user-1")
	require.NoError(t, err)

	var seen string
	protected := v.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = AuthFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", "Authorization header is required"},
		{"wrong scheme", "Basic abc", "Invalid authorization header"},
		{"lowercase bearer", "bearer " + token, "Invalid authorization header"},
		{"empty token", "Bearer ", "Token is required"},
		{"blank token", "Bearer    ", "Token is required"},
		{"garbage token", "Bearer not-a-jwt", "Invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body errorsBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Len(t, body.Errors, 1)
			assert.Equal(t, tc.wantMsg, body.Errors[0].Message)
			assert.Empty(t, seen, "next handler must not run")
		})
	}

	t.Run("valid token", func(t *testing.T) {
		before := testutil.ToFloat64(authAttempts.WithLabelValues("token", "true"))
		req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "user-1", seen)
		assert.Equal(t, before+1, testutil.ToFloat64(authAttempts.WithLabelValues("token", "true")))
	})

	t.Run("expired token", func(t *testing.T) {
		now = now.Add(auth.AccessTokenTTL + time.Second)
		defer func() { now = now.Add(-auth.AccessTokenTTL - time.Second) }()

		req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var body errorsBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Invalid token", body.Errors[0].Message)
	})
}

func TestAuthFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", AuthFromContext(req.Context()))
}
