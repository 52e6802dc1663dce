package notify

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/oaktires/accounts-api/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQSink publishes login events to a RabbitMQ queue.
type RabbitMQSink struct {
	conn            *amqp.Connection
	channel         *amqp.Channel
	queue           string
	queueDurable    bool
	queueAutoDelete bool
}

// NewRabbitMQSink constructs a RabbitMQ sink from config.
func NewRabbitMQSink(cfg config.RabbitMQConfig) (*RabbitMQSink, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	if strings.TrimSpace(cfg.Queue) == "" {
		return nil, errors.New("rabbitmq queue is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &RabbitMQSink{
		conn:            conn,
		channel:         ch,
		queue:           cfg.Queue,
		queueDurable:    cfg.QueueDurable,
		queueAutoDelete: cfg.QueueAutoDelete,
	}, nil
}

// Send publishes the event as JSON to the configured queue.
func (s *RabbitMQSink) Send(ctx context.Context, event LoginEvent) error {
	if err := validateEvent(event); err != nil {
		return err
	}

	if _, err := s.declareQueue(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   newMessageID(),
		Body:        body,
	})
}

// Close closes the underlying channel and connection.
func (s *RabbitMQSink) Close() error {
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *RabbitMQSink) declareQueue() (amqp.Queue, error) {
	return s.channel.QueueDeclare(
		s.queue,
		s.queueDurable,
		s.queueAutoDelete,
		false,
		false,
		nil,
	)
}

func newMessageID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(buf[:])
}
