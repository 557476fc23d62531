package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/amirhosseinghanipour/orgauth/internal/application/ports"
)

const (
	// SecretHeader carries AUDIT_WEBHOOK_SECRET so the receiver can reject
	// forged events.
	SecretHeader = "X-Audit-Secret"
	// EventHeader repeats AuditEvent.Event for receivers that route on headers.
	EventHeader = "X-Audit-Event"

	defaultTimeout = 5 * time.Second
)

// AuditWebhook delivers each audit event as one JSON POST.
type AuditWebhook struct {
	client *http.Client
	url    string
	secret string
}

type Option func(*AuditWebhook)

func WithHTTPClient(c *http.Client) Option {
	return func(w *AuditWebhook) {
		w.client = c
	}
}

func WithSecret(secret string) Option {
	return func(w *AuditWebhook) {
		w.secret = secret
	}
}

func NewAuditWebhook(url string, opts ...Option) *AuditWebhook {
	w := &AuditWebhook{
		client: &http.Client{Timeout: defaultTimeout},
		url:    url,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *AuditWebhook) Emit(ctx context.Context, event ports.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event %q: %w", event.Event, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(EventHeader, event.Event)
	if w.secret != "" {
		req.Header.Set(SecretHeader, w.secret)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver audit event %q: %w", event.Event, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &DeliveryError{Event: event.Event, Status: resp.StatusCode}
	}
	return nil
}

// DeliveryError is returned when the receiver answers outside 2xx.
type DeliveryError struct {
	Event  string
	Status int
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("audit event %q rejected with status %d", e.Event, e.Status)
}

var _ ports.AuditSink = (*AuditWebhook)(nil)
