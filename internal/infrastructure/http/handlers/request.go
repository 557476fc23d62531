package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amirhosseinghanipour/orgauth/internal/application/validation"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 1 << 20

// jsonObject is a decoded request body. Fields are read loosely so a wrong
// JSON type can be reported per field instead of failing the whole body.
type jsonObject map[string]any

func decodeObject(w http.ResponseWriter, r *http.Request) (jsonObject, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var obj jsonObject
	if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = jsonObject{}
	}
	return obj, nil
}

// str returns the field when it is a JSON string, "" otherwise.
func (o jsonObject) str(key string) string {
	s, _ := o[key].(string)
	return s
}

// optionalStr returns nil for absent or null fields. ok is false when the
// field holds a non-string value.
func (o jsonObject) optionalStr(key string) (value *string, ok bool) {
	v, present := o[key]
	if !present || v == nil {
		return nil, true
	}
	s, isString := v.(string)
	if !isString {
		return nil, false
	}
	return &s, true
}

// typeErrors reports present, non-null fields that are not strings.
// Required fields get the required message.
func (o jsonObject) typeErrors(required []string, optional []string) *domerrors.ValidationError {
	out := &domerrors.ValidationError{}
	check := func(field, message string) {
		v, present := o[field]
		if !present || v == nil {
			return
		}
		if _, ok := v.(string); !ok {
			out.Fields = append(out.Fields, domerrors.FieldError{Field: field, Message: message})
		}
	}
	for _, f := range required {
		check(f, validation.RequiredStringMessage)
	}
	for _, f := range optional {
		check(f, validation.StringMessage)
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return out
}
