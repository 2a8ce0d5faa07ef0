// Package queue publishes domain events to RabbitMQ. Publishing is
// best-effort: errors are logged and returned so callers can ignore
// failures without interrupting the main request flow.
package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher publishes generation events
type Publisher interface {
	PublishGenerationCompleted(ctx context.Context, event GenerationCompletedEvent) error
}

// AMQPPublisher publishes events to a durable RabbitMQ queue
type AMQPPublisher struct {
	url       string
	queueName string
	logger    *logrus.Logger
}

// NewAMQPPublisher creates a publisher for the given broker URL
func NewAMQPPublisher(url, queueName string, logger *logrus.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		url:       url,
		queueName: queueName,
		logger:    logger,
	}
}

// PublishGenerationCompleted publishes the event to the configured
// queue. Messages are marked as persistent.
func (p *AMQPPublisher) PublishGenerationCompleted(ctx context.Context, event GenerationCompletedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.queueName, // name
		true,        // durable
		false,       // autoDelete
		false,       // exclusive
		false,       // noWait
		nil,         // args
	); err != nil {
		p.logger.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Warn("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		p.logger.WithError(err).Warn("rabbitmq: publish failed")
		return err
	}

	return nil
}

// NoopPublisher drops events. Used when no broker is configured and in
// tests.
type NoopPublisher struct{}

func (NoopPublisher) PublishGenerationCompleted(ctx context.Context, event GenerationCompletedEvent) error {
	return nil
}
