package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON to a single topic, keyed by subject
// so events about the same post or user stay ordered within a partition.
type KafkaPublisher struct {
	w messageWriter
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
// Writes are asynchronous: Publish only fails on encoding errors, and
// delivery failures are logged once the batch completes.
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{w: newKafkaWriter(brokers, topic, log)}
}

func newKafkaWriter(brokers []string, topic string, log *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion:   logDeliveryFailures(topic, log),
	}
}

func logDeliveryFailures(topic string, log *zap.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		types := make([]string, 0, len(msgs))
		for _, m := range msgs {
			for _, h := range m.Headers {
				if h.Key == "event_type" {
					types = append(types, string(h.Value))
				}
			}
		}
		log.Warn("event delivery failed",
			zap.String("topic", topic),
			zap.Int("messages", len(msgs)),
			zap.Strings("event_types", types),
			zap.Error(err))
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.Type, err)
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.SubjectID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }
