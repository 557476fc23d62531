package auth

import (
	"github.com/amirhosseinghanipour/orgauth/internal/application/validation"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

// ValidateRegisterInput reports every missing required field at once.
func ValidateRegisterInput(input RegisterUserInput) *domerrors.ValidationError {
	return validation.Struct(input)
}
