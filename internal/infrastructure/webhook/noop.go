package webhook

import (
	"context"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
)

// Discard drops audit events; the handlers still log them.
type Discard struct{}

func (Discard) Emit(context.Context, ports.AuditEvent) error { return nil }

var _ ports.AuditSink = Discard{}
