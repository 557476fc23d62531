package ports

import (
	"context"
	"time"
)

// AuditEvent is a security relevant action (register, login, organization changes).
type AuditEvent struct {
	Event     string    `json:"event"`
	UserID    string    `json:"user_id,omitempty"`
	IP        string    `json:"ip"`
	RequestID string    `json:"request_id,omitempty"`
	Success   bool      `json:"success"`
	Err       string    `json:"error,omitempty"`
	Time      time.Time `json:"time"`
}

// AuditSink forwards audit events outside the process.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent) error
}
