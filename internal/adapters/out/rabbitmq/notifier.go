// Package rabbitmq implements the notification gateway over a durable
// RabbitMQ queue. Delivery is best effort; handlers log a failed publish
// and move on, so the broker being down never blocks an order.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/ports"

	amqp "github.com/streadway/amqp"
)

// QueueName is the queue order lifecycle events are published to.
const QueueName = "order_notifications"

var _ ports.NotificationGateway = &Notifier{}

// Notifier publishes order lifecycle events as JSON messages.
type Notifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewNotifier connects to the broker and declares the notification queue.
func NewNotifier(url string) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", QueueName, err)
	}

	return &Notifier{conn: conn, channel: channel}, nil
}

// Close releases the channel and the connection.
func (n *Notifier) Close() error {
	var errs []error
	if n.channel != nil {
		errs = append(errs, n.channel.Close())
	}
	if n.conn != nil {
		errs = append(errs, n.conn.Close())
	}
	return errors.Join(errs...)
}

// messageDTO is the wire shape of one order event.
type messageDTO struct {
	Kind       string    `json:"kind"`
	OrderID    string    `json:"orderId"`
	ShortCode  string    `json:"shortCode"`
	CustomerID string    `json:"customerId"`
	CourierID  *string   `json:"courierId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publish sends one event to the notification queue as a persistent
// JSON message.
func (n *Notifier) Publish(ctx context.Context, event ports.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dto := messageDTO{
		Kind:       string(event.Kind),
		OrderID:    event.OrderID.String(),
		ShortCode:  event.ShortCode,
		CustomerID: event.CustomerID.String(),
		OccurredAt: event.OccurredAt,
	}
	if event.CourierID != nil {
		id := event.CourierID.String()
		dto.CourierID = &id
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Kind, err)
	}

	err = n.channel.Publish(
		"",        // default exchange
		QueueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", event.Kind, err)
	}

	return nil
}
