package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const bearerPrefix = "Bearer "

// AuthValidator rejects requests without a valid bearer token and puts the
// token's user id in the context (see AuthFromContext). It never loads the user.
type AuthValidator struct {
	issuer ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthValidator(issuer ports.TokenIssuer, log zerolog.Logger) *AuthValidator {
	return &AuthValidator{issuer: issuer, log: log}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.authenticate(r.Header.Get("Authorization"))
		if err != nil {
			RecordAuthAttempt("token", false)
			m.log.Debug().
				Err(err).
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("path", r.URL.Path).
				Msg("request rejected")
			writeAuthErr(w, authMessage(err))
			return
		}
		RecordAuthAttempt("token", true)
		next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), userID)))
	})
}

func (m *AuthValidator) authenticate(header string) (string, error) {
	if header == "" {
		return "", domerrors.ErrMissingAuth
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", domerrors.ErrInvalidAuthHeader
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", domerrors.ErrMissingToken
	}
	userID, err := m.issuer.ValidateAccessToken(token)
	if err != nil {
		return "", errors.Join(domerrors.ErrInvalidToken, err)
	}
	return userID, nil
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, domerrors.ErrMissingAuth):
		return "Authorization header is required"
	case errors.Is(err, domerrors.ErrInvalidAuthHeader):
		return "Invalid authorization header"
	case errors.Is(err, domerrors.ErrMissingToken):
		return "Token is required"
	default:
		return "Invalid token"
	}
}

type errorItem struct {
	Message string `json:"message"`
}

func writeAuthErr(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string][]errorItem{"errors": {{Message: message}}})
}
