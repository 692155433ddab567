// Package notify delivers booking notifications. Delivery is best effort:
// a failed send is logged and counted, never retried, and never visible to
// the HTTP caller.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Message kinds. The confirmation goes to the customer; the internal copy
// goes to staff and additionally carries project details.
const (
	KindConfirmation = "confirmation"
	KindInternal     = "internal"
)

// Message is the structured payload handed to a Notifier. The notification
// bridge on the other side decides templating and transport.
type Message struct {
	Kind          string  `json:"kind"`
	To            string  `json:"to"`
	Subject       string  `json:"subject"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	ServiceName   string  `json:"service_name"`
	PricePaid     float64 `json:"price_paid"`
	ProjectName   string  `json:"project_name,omitempty"`
	Note          string  `json:"note,omitempty"`
}

// Notifier sends a single structured message.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier writes the message to the structured log instead of sending
// it anywhere. It is the default when no webhook is configured, and keeps
// local development free of external dependencies.
type LogNotifier struct {
	Log *slog.Logger
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	log := n.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("notification",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"service", msg.ServiceName,
	)
	return nil
}

// WebhookNotifier POSTs the message as JSON to the configured notification
// bridge endpoint. Any non-2xx response is an error.
type WebhookNotifier struct {
	URL    string
	Client *http.Client
}

// NewWebhookNotifier constructs a WebhookNotifier with a 10-second client
// timeout.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify.WebhookNotifier.Send: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify.WebhookNotifier.Send: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("notify.WebhookNotifier.Send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify.WebhookNotifier.Send: bridge returned %d", resp.StatusCode)
	}
	return nil
}
