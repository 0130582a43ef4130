package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"gameshelf-backend/internal/config"
)

// Notifier is the outbound notification sink. Dispatch is best-effort:
// a failed delivery is logged and never fails the write that triggered it.
type Notifier interface {
	Notify(event string, payload any)
	Ready() bool
}

// Event payload sent to the configured webhook.
type Event struct {
	Event     string    `json:"event"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HTTPNotifier posts events to a configured URL. The client is injected
// at construction with an explicit readiness state; an unconfigured URL
// means the notifier is not ready and dispatch is a no-op.
type HTTPNotifier struct {
	url    string
	client *http.Client
}

func NewHTTPNotifier(cfg config.WebhookConfig) *HTTPNotifier {
	return &HTTPNotifier{
		url: cfg.URL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

var _ Notifier = (*HTTPNotifier)(nil)

// Ready reports whether a webhook URL is configured.
func (n *HTTPNotifier) Ready() bool {
	return n.url != ""
}

// Notify dispatches the event in the background. The delivery runs
// detached from the request context so a finished request does not
// cancel it.
func (n *HTTPNotifier) Notify(event string, payload any) {
	if !n.Ready() {
		log.Debug().Str("event", event).Msg("Webhook not configured, skipping notify")
		return
	}

	go func() {
		if err := n.send(event, payload); err != nil {
			log.Warn().Err(err).Str("event", event).Msg("Webhook delivery failed")
		}
	}()
}

func (n *HTTPNotifier) send(event string, payload any) error {
	body, err := json.Marshal(Event{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}

	return nil
}
