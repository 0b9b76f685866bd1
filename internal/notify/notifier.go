// Package notify delivers completed orders to the outside world. Delivery is
// strictly post-commit and best-effort: a failure is the caller's to log,
// never a reason to unwind the order.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mcardoso/storefront/internal/models"
)

type Notifier interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
}

type orderLineEvent struct {
	ProductID string  `json:"product_id"`
	Quantity  uint    `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type orderPlacedEvent struct {
	Type      string           `json:"type"`
	OrderID   string           `json:"order_id"`
	SessionID string           `json:"session_id"`
	Email     string           `json:"email"`
	Total     float64          `json:"total"`
	Lines     []orderLineEvent `json:"lines"`
	CreatedAt time.Time        `json:"created_at"`
}

type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (n *KafkaNotifier) OrderPlaced(ctx context.Context, order *models.Order) error {
	event := orderPlacedEvent{
		Type:      "order_placed",
		OrderID:   order.ID.String(),
		SessionID: order.SessionID,
		Email:     order.Email,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
	for _, l := range order.Lines {
		event.Lines = append(event.Lines, orderLineEvent{
			ProductID: l.ProductID.String(),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID.String()),
		Value: data,
		Time:  time.Now(),
	})
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// Noop is used when no brokers are configured and in tests.
type Noop struct{}

func (Noop) OrderPlaced(ctx context.Context, order *models.Order) error { return nil }
