// Package rabbitmq provides the AMQP-backed notifier. Command handlers
// publish notification messages to a durable queue; a separate worker drains
// the queue and delivers the actual emails, so a slow mail provider never
// holds an order transaction open.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// NotificationQueue is the queue notification messages are published to.
const NotificationQueue = "order-notifications"

// notification is the wire format consumed by the notification worker.
type notification struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Notifier publishes notifications to RabbitMQ.
type Notifier struct {
	channel *amqp.Channel
	queue   amqp.Queue
}

// NewNotifier declares the notification queue on the given channel and
// returns a notifier publishing to it. The queue is durable so queued
// notifications survive a broker restart.
func NewNotifier(channel *amqp.Channel) (*Notifier, error) {
	queue, err := channel.QueueDeclare(
		NotificationQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", NotificationQueue, err)
	}

	return &Notifier{
		channel: channel,
		queue:   queue,
	}, nil
}

// Notify publishes a notification message for the given email address.
func (n *Notifier) Notify(_ context.Context, email, message string) error {
	body, err := json.Marshal(notification{
		Email:   email,
		Message: message,
	})
	if err != nil {
		return err
	}

	err = n.channel.Publish(
		"", // default exchange
		n.queue.Name,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	return nil
}
