package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/orgauth/internal/application/auth"
	"github.com/amirhosseinghanipour/orgauth/internal/application/validation"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register *auth.RegisterUser
	login    *auth.Login
	audit    *Auditor
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, audit *Auditor, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{register: register, login: login, audit: audit, log: log}
}

type userResponse struct {
	UserID    string  `json:"userId"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
}

type sessionResponse struct {
	AccessToken string       `json:"accessToken"`
	User        userResponse `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		UserID:    u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
}

var (
	registerRequired = []string{"firstName", "lastName", "email", "password"}
	registerOptional = []string{"phone"}
)

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "Registration unsuccessful")
		return
	}
	phone, _ := body.optionalStr("phone")
	input := auth.RegisterUserInput{
		FirstName: body.str("firstName"),
		LastName:  body.str("lastName"),
		Email:     body.str("email"),
		Password:  body.str("password"),
		Phone:     phone,
	}
	if typeErrs := body.typeErrors(registerRequired, registerOptional); typeErrs != nil {
		middleware.RecordAuthAttempt("register", false)
		writeValidation(w, validation.Merge(typeErrs, auth.ValidateRegisterInput(input)))
		return
	}

	result, err := h.register.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordAuthAttempt("register", false)
		h.audit.Record(r, "user.register", "", false, err.Error())
		var verr *domerrors.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidation(w, verr)
		case errors.Is(err, domerrors.ErrDuplicateEmail):
			writeValidation(w, &domerrors.ValidationError{Fields: []domerrors.FieldError{
				{Field: "email", Message: "Duplicate email"},
			}})
		default:
			h.log.Error().Err(err).Msg("register failed")
			writeErr(w, http.StatusBadRequest, "Registration unsuccessful")
		}
		return
	}
	middleware.RecordAuthAttempt("register", true)
	h.audit.Record(r, "user.register", result.User.ID.String(), true, "")
	writeSuccess(w, http.StatusCreated, "Registration successful", sessionResponse{
		AccessToken: result.AccessToken,
		User:        toUserResponse(result.User),
	})
}

// Login answers every credential failure with the same 401 body so callers
// cannot tell an unknown email from a wrong password. Store failures are 500.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		body = jsonObject{}
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    body.str("email"),
		Password: body.str("password"),
	})
	if err != nil {
		middleware.RecordAuthAttempt("login", false)
		h.audit.Record(r, "user.login", "", false, err.Error())
		if !errors.Is(err, domerrors.ErrAuthenticationFailed) {
			h.log.Error().Err(err).Msg("login failed")
			writeErr(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeErr(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	middleware.RecordAuthAttempt("login", true)
	h.audit.Record(r, "user.login", result.User.ID.String(), true, "")
	writeSuccess(w, http.StatusOK, "Login successful", sessionResponse{
		AccessToken: result.AccessToken,
		User:        toUserResponse(result.User),
	})
}
