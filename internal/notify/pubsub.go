package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/oaktires/accounts-api/config"
	"google.golang.org/api/option"
)

// PubSubSink publishes login events to a Google Cloud Pub/Sub topic.
type PubSubSink struct {
	client *pubsub.Client
	topic  string
}

// NewPubSubSink constructs a Pub/Sub sink from config.
func NewPubSubSink(ctx context.Context, cfg config.PubSubConfig) (*PubSubSink, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("pubsub project id is required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("pubsub topic is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, err
	}

	return &PubSubSink{client: client, topic: cfg.Topic}, nil
}

// Send publishes the event as JSON to the configured topic.
func (s *PubSubSink) Send(ctx context.Context, event LoginEvent) error {
	if err := validateEvent(event); err != nil {
		return err
	}

	topic, err := s.ensureTopic(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	result := topic.Publish(ctx, &pubsub.Message{
		Data:       body,
		Attributes: map[string]string{"event": "login"},
	})
	_, err = result.Get(ctx)
	return err
}

// Close closes the underlying Pub/Sub client.
func (s *PubSubSink) Close() error {
	return s.client.Close()
}

func (s *PubSubSink) ensureTopic(ctx context.Context) (*pubsub.Topic, error) {
	topic := s.client.Topic(s.topic)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return s.client.CreateTopic(ctx, s.topic)
	}
	return topic, nil
}
