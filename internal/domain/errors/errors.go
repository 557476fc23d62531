package errors

import (
	"errors"
	"strings"
)

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrDuplicateEmail       = errors.New("duplicate email")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUserNotFound         = errors.New("user not found")
	ErrTargetUserNotFound   = errors.New("target user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationConflict = errors.New("user already belongs to an organization with this name")
	ErrNotAMember           = errors.New("user is not a member of this organization")

	ErrMissingAuth       = errors.New("authorization header is required")
	ErrInvalidAuthHeader = errors.New("invalid authorization header")
	ErrMissingToken      = errors.New("token is required")
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrMalformedToken    = errors.New("token is malformed or has an invalid signature")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every invalid field of a request, not only the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// Has reports whether field is among the offending fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
