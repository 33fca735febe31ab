package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Siddharthnigam/jugglers-shop/internal/orders"
)

// Publisher emits order lifecycle events for downstream consumers
// (fulfilment, notifications).
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *orders.Order) error
	Close() error
}

type orderCreatedEvent struct {
	OrderID     string    `json:"order_id"`
	SessionID   string    `json:"session_id"`
	TotalAmount float64   `json:"total_amount"`
	Currency    string    `json:"currency"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// KafkaPublisher writes order events to the order-events topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    "order-events",
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *orders.Order) error {
	event := orderCreatedEvent{
		OrderID:     order.ID.String(),
		SessionID:   order.SessionID,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID.String()),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, *orders.Order) error { return nil }
func (NopPublisher) Close() error                                             { return nil }
