package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Domenick1991/aerodrome/config"
	"github.com/segmentio/kafka-go"
)

// EventHandler processes one decoded booking event.
type EventHandler func(ctx context.Context, event BookingEvent) error

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

// Consume reads booking events until the context is canceled or the reader
// fails. A malformed payload or a failing handler is logged and skipped; one
// bad event must not stop the stream.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		dispatch(ctx, msg, handler)
	}
}

func dispatch(ctx context.Context, msg kafka.Message, handler EventHandler) {
	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Printf("skip malformed event at offset %d: %v", msg.Offset, err)
		return
	}
	if err := handler(ctx, event); err != nil {
		log.Printf("handle %s event for booking %s: %v", event.Type, event.Token, err)
	}
}
