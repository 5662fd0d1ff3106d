package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/selimhany/airreserve/config"
)

// EventHandler processes one decoded reservation event.
type EventHandler func(ctx context.Context, event ReservationEvent) error

// Consumer reads reservation events from a topic and hands the decoded
// event to a handler. Payloads that do not decode are dropped so one
// poison message cannot wedge the group.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg config.KafkaConfig, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := dispatch(ctx, msg.Value, handler); err != nil {
			return err
		}
	}
}

func dispatch(ctx context.Context, payload []byte, handler EventHandler) error {
	var event ReservationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil
	}
	return handler(ctx, event)
}
