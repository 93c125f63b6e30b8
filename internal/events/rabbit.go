// Package events publishes domain events to a RabbitMQ topic exchange
// so the dashboard and downstream tooling can react to back-office
// changes. The service keeps working when the broker is down.
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const exchange = "carhub.events"

// Routing keys published by the service.
const (
	RKUserCreated    = "user.created"
	RKBookingCreated = "part.booking.created"
	RKPartCreated    = "part.created"
	RKPartStockSet   = "part.stock_set"
	RKCarCreated     = "car.created"
)

type BookingCreated struct {
	BookingID int64 `json:"booking_id"`
	UserID    int64 `json:"user_id"`
	PartID    int64 `json:"spare_part_id"`
	Quantity  int32 `json:"quantity"`
}

type UserCreated struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type StockSet struct {
	PartID   int64 `json:"spare_part_id"`
	Quantity int32 `json:"quantity"`
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(rabbitURL string) (*Publisher, error) {
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Publish is best effort and nil-safe: a nil publisher (broker absent
// at boot) drops events silently, matching how the rest of the service
// treats the broker as optional.
func (p *Publisher) Publish(routingKey string, payload any) error {
	if p == nil || p.channel == nil {
		return nil
	}
	body, err := json.Marshal(struct {
		Type      string    `json:"type"`
		Timestamp time.Time `json:"timestamp"`
		Payload   any       `json:"payload"`
	}{
		Type:      routingKey,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return err
	}
	log.Debug().Str("event", routingKey).Msg("publish event")
	return p.channel.PublishWithContext(context.Background(),
		exchange, routingKey, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}
