package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cherishedwords/internal/services"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// CardEventsQueue is the durable queue card events are published to.
const CardEventsQueue = "card_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
	log     logrus.FieldLogger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the card
// events queue.
func NewClient(cfg Config, log logrus.FieldLogger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.WithField("queue", CardEventsQueue).Info("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		log:     log,
	}, nil
}

func declareQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		CardEventsQueue, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", CardEventsQueue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// EncodeCardEvent builds the persistent AMQP message for a card event.
func EncodeCardEvent(event services.CardEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal card event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event.Type,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
	}, nil
}

// DecodeCardEvent parses the body of a delivered card event.
func DecodeCardEvent(msg amqp.Delivery) (services.CardEvent, error) {
	var event services.CardEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return event, fmt.Errorf("failed to decode card event: %w", err)
	}
	if event.Type == "" {
		event.Type = msg.Type
	}
	return event, nil
}

// PublishCardEvent implements services.EventPublisher.
func (c *Client) PublishCardEvent(event services.CardEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := EncodeCardEvent(event, time.Now())
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Default exchange, routed straight to the queue.
	if err := c.channel.Publish("", CardEventsQueue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// ConsumeCardEvents starts a goroutine that hands every delivered card event
// to handler. Messages are acked on success; failed messages are rejected
// without requeue so a poison message cannot loop forever.
func (c *Client) ConsumeCardEvents(handler func(services.CardEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			entry := c.log.WithField("delivery_tag", msg.DeliveryTag)
			event, err := DecodeCardEvent(msg)
			if err == nil {
				err = handler(event)
			}
			if err != nil {
				entry.WithError(err).Error("failed to process card event")
				if nackErr := msg.Nack(false, false); nackErr != nil {
					entry.WithError(nackErr).Error("failed to nack card event")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				entry.WithError(ackErr).Error("failed to ack card event")
			}
		}
	}()

	return nil
}
