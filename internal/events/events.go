// Package events publishes order lifecycle events to a message broker so
// downstream consumers (fulfilment, notifications) can react to checkouts.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types published on the order exchange.
const (
	EventOrderCreated       = "order.created"
	EventOrderPaid          = "order.paid"
	EventOrderPaymentFailed = "order.payment_failed"
)

// OrderEvent is the message body published for order lifecycle changes.
type OrderEvent struct {
	Type        string          `json:"type"`
	OrderID     uuid.UUID       `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	Total       decimal.Decimal `json:"total"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// Publisher publishes order events. Publishing is best effort: callers log
// failures but never fail the originating operation because of them.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
	Close() error
}

// NopPublisher discards all events. Used when AMQP is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, OrderEvent) error { return nil }
func (NopPublisher) Close() error                                        { return nil }
