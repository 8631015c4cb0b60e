package service

import (
	"context"
	"time"
)

type OrderEventType string

const (
	EventOrderCreated       OrderEventType = "order.created"
	EventOrderPaid          OrderEventType = "order.paid"
	EventOrderPaymentFailed OrderEventType = "order.payment_failed"
	EventOrderStatusUpdated OrderEventType = "order.status_updated"
)

type OrderEvent struct {
	Type          OrderEventType `json:"type"`
	OrderID       string         `json:"order_id"`
	OrderNumber   string         `json:"order_number"`
	UserID        string         `json:"user_id,omitempty"`
	CustomerName  string         `json:"customer_name,omitempty"`
	CustomerEmail string         `json:"customer_email,omitempty"`
	Total         float64        `json:"total"`
	Currency      string         `json:"currency"`
	PaymentStatus string         `json:"payment_status"`
	OrderStatus   string         `json:"order_status"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

type EventBus interface {
	PublishOrderEvent(ctx context.Context, e OrderEvent) error
}
