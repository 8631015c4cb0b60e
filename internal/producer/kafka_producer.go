package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vraj1599/jasubhaichappal/internal/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderEventProducer struct {
	writer messageWriter
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// PublishOrderEvent пишет событие с ключом по id заказа, чтобы события одного
// заказа попадали в одну партицию и читались по порядку.
func (p *OrderEventProducer) PublishOrderEvent(ctx context.Context, e service.OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	})
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

// LogBus заменяет Kafka при KAFKA_ENABLED=false: события только пишутся в лог.
type LogBus struct {
	log *zap.Logger
}

func NewLogBus(log *zap.Logger) *LogBus { return &LogBus{log: log} }

func (b *LogBus) PublishOrderEvent(ctx context.Context, e service.OrderEvent) error {
	b.log.Info("order event",
		zap.String("type", string(e.Type)),
		zap.String("order_id", e.OrderID),
		zap.String("order_number", e.OrderNumber),
	)
	return nil
}
