package handlers

import (
	"encoding/json"
	"net/http"

	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
)

const (
	statusSuccess       = "success"
	statusBadRequest    = "Bad request"
	statusBadRequestAlt = "Bad Request"
)

type errorEnvelope struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

type successEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type validationEnvelope struct {
	Errors []domerrors.FieldError `json:"errors"`
}

// writeErr sends {"status":"Bad request","message":...,"statusCode":code}.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorEnvelope{Status: statusBadRequest, Message: message, StatusCode: code})
}

// writeClientErr is writeErr with the "Bad Request" spelling the
// organisation create endpoint has always used.
func writeClientErr(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Status: statusBadRequestAlt, Message: "Client error", StatusCode: http.StatusBadRequest})
}

func writeValidation(w http.ResponseWriter, verr *domerrors.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, validationEnvelope{Errors: verr.Fields})
}

func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, successEnvelope{Status: statusSuccess, Message: message, Data: data})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
