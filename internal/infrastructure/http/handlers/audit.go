package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
)

// Auditor writes audit lines to the log and forwards them to an optional sink.
type Auditor struct {
	log  zerolog.Logger
	sink ports.AuditSink
}

// NewAuditor accepts a nil sink.
func NewAuditor(log zerolog.Logger, sink ports.AuditSink) *Auditor {
	return &Auditor{log: log, sink: sink}
}

func (a *Auditor) Record(r *http.Request, event, userID string, success bool, errMsg string) {
	AuditLog(a.log, r, event, userID, success, errMsg)
	if a.sink == nil {
		return
	}
	err := a.sink.Emit(r.Context(), ports.AuditEvent{
		Event:     event,
		UserID:    userID,
		IP:        getClientIP(r),
		RequestID: middleware.GetReqID(r.Context()),
		Success:   success,
		Err:       errMsg,
		Time:      time.Now().UTC(),
	})
	if err != nil {
		a.log.Warn().Err(err).Str("event", event).Msg("audit sink")
	}
}

// AuditLog logs a security relevant event with the acting user and client IP.
func AuditLog(log zerolog.Logger, r *http.Request, event, userID string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("user_id", userID).
		Str("ip", getClientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("audit")
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
