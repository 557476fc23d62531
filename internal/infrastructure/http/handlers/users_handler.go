package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/orgauth/internal/application/auth"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/http/middleware"
)

type UsersHandler struct {
	getUser *auth.GetUser
	log     zerolog.Logger
}

func NewUsersHandler(getUser *auth.GetUser, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{getUser: getUser, log: log}
}

// Get returns the caller's own record; any other id is refused.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.AuthFromContext(r.Context())
	if chi.URLParam(r, "id") != callerID {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := domain.ParseUserID(callerID)
	if err != nil {
		writeErr(w, http.StatusNotFound, "User not found")
		return
	}
	user, err := h.getUser.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domerrors.ErrUserNotFound) {
			writeErr(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Msg("get user failed")
		writeErr(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeSuccess(w, http.StatusOK, "User found", toUserResponse(user))
}
