package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/sender"
	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const orderConfirmedTemplate = "order_confirmed"

type EmailSender interface {
	SendEmail(n sender.Notification) error
}

type KafkaOrderConsumer struct {
	reader      *kafka.Reader
	emailSender EmailSender
	log         *zap.Logger
}

func NewKafkaOrderConsumer(brokers []string, groupID, topic string, emailSender EmailSender, log *zap.Logger) *KafkaOrderConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &KafkaOrderConsumer{reader: r, emailSender: emailSender, log: log}
}

func (c *KafkaOrderConsumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		if err := c.Handle(m.Value); err != nil {
			c.log.Error("handle order event", zap.ByteString("value", m.Value), zap.Error(err))
		}
	}
}

// Handle обрабатывает одно событие заказа. Письмо отправляется только на order.paid.
func (c *KafkaOrderConsumer) Handle(value []byte) error {
	var e service.OrderEvent
	if err := json.Unmarshal(value, &e); err != nil {
		return fmt.Errorf("unmarshal order event: %w", err)
	}

	if e.Type != service.EventOrderPaid {
		c.log.Info("order event", zap.String("type", string(e.Type)), zap.String("order_number", e.OrderNumber))
		return nil
	}
	if e.CustomerEmail == "" {
		c.log.Warn("paid order has no customer email", zap.String("order_id", e.OrderID))
		return nil
	}

	n := sender.Notification{
		To:       e.CustomerEmail,
		Subject:  "Заказ " + e.OrderNumber + " подтверждён",
		Template: orderConfirmedTemplate,
		Data: map[string]any{
			"name":         e.CustomerName,
			"order_number": e.OrderNumber,
			"total":        fmt.Sprintf("%.2f", e.Total),
			"currency":     e.Currency,
		},
	}
	if err := c.emailSender.SendEmail(n); err != nil {
		return fmt.Errorf("send email to %s: %w", e.CustomerEmail, err)
	}
	c.log.Info("email sent", zap.String("to", e.CustomerEmail), zap.String("template", n.Template))
	return nil
}

func (c *KafkaOrderConsumer) Close() error {
	if c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
