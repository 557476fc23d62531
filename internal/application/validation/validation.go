// Package validation wraps validator/v10 so struct failures come back as a
// domain ValidationError keyed by JSON field name.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/go-playground/validator/v10"
)

const (
	RequiredStringMessage = "This field is required and must be a string"
	StringMessage         = "This field must be a string"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(jsonFieldName)
	})
	return instance
}

// Struct validates s and lists every failing field. Nil means valid.
func Struct(s any) *domerrors.ValidationError {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domerrors.ValidationError{Fields: []domerrors.FieldError{{Message: err.Error()}}}
	}
	out := &domerrors.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domerrors.FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

// Merge combines field errors, keeping the first message per field.
func Merge(errs ...*domerrors.ValidationError) *domerrors.ValidationError {
	out := &domerrors.ValidationError{}
	seen := make(map[string]bool)
	for _, e := range errs {
		if e == nil {
			continue
		}
		for _, f := range e.Fields {
			if seen[f.Field] {
				continue
			}
			seen[f.Field] = true
			out.Fields = append(out.Fields, f)
		}
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return RequiredStringMessage
	default:
		return StringMessage
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
