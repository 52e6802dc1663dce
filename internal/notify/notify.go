package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oaktires/accounts-api/config"
	"github.com/rs/zerolog/log"
)

const defaultSendTimeout = 5 * time.Second

// LoginEvent is the payload published after a successful login.
type LoginEvent struct {
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// Sink delivers a login event to one destination.
type Sink interface {
	Send(ctx context.Context, event LoginEvent) error
	Close() error
}

// NewSink constructs the sink selected by config. It returns a nil Sink
// when notifications are disabled.
func NewSink(ctx context.Context, cfg config.NotifyConfig) (Sink, error) {
	backend := strings.TrimSpace(strings.ToLower(cfg.Backend))
	if backend == "" && strings.TrimSpace(cfg.Webhook.LoginEventURL) != "" {
		backend = "webhook"
	}

	switch backend {
	case "":
		return nil, nil
	case "webhook":
		return NewWebhookSink(cfg.Webhook)
	case "rabbitmq":
		return NewRabbitMQSink(cfg.RabbitMQ)
	case "pubsub":
		return NewPubSubSink(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown notify backend %q", cfg.Backend)
	}
}

// Notifier dispatches login events without blocking the caller. A nil
// Notifier, or one built over a nil Sink, is a no-op.
type Notifier struct {
	sink    Sink
	timeout time.Duration
}

func NewNotifier(sink Sink) *Notifier {
	return &Notifier{sink: sink, timeout: defaultSendTimeout}
}

// LoginEvent hands the event to the sink on a detached goroutine with
// its own deadline. Delivery failures are logged and never reach the
// caller.
func (n *Notifier) LoginEvent(event LoginEvent) {
	if n == nil || n.sink == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.sink.Send(ctx, event); err != nil {
			log.Warn().
				Err(err).
				Str("user_id", event.UserID).
				Str("username", event.Username).
				Msg("failed to deliver login event")
		}
	}()
}

// Close closes the underlying sink.
func (n *Notifier) Close() error {
	if n == nil || n.sink == nil {
		return nil
	}
	return n.sink.Close()
}

var errMissingEvent = errors.New("login event is missing a user id")

func validateEvent(event LoginEvent) error {
	if strings.TrimSpace(event.UserID) == "" {
		return errMissingEvent
	}
	return nil
}
