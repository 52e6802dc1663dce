package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/oaktires/accounts-api/config"
)

// WebhookSink posts login events as JSON to a configured HTTP endpoint.
type WebhookSink struct {
	url    string
	client *http.Client
}

// NewWebhookSink constructs a webhook sink from config.
func NewWebhookSink(cfg config.WebhookConfig) (*WebhookSink, error) {
	if strings.TrimSpace(cfg.LoginEventURL) == "" {
		return nil, errors.New("webhook login event url is required")
	}
	return &WebhookSink{
		url:    cfg.LoginEventURL,
		client: &http.Client{Timeout: defaultSendTimeout},
	}, nil
}

// Send posts the event to the configured URL. Any non-2xx response is
// an error.
func (s *WebhookSink) Send(ctx context.Context, event LoginEvent) error {
	if err := validateEvent(event); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op; the sink holds no connection state.
func (s *WebhookSink) Close() error {
	return nil
}
