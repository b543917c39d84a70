package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/config"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes lookup events to a Kafka topic.
// It implements gateway.EventRecorder.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates an asynchronous Kafka producer for the lookup topic.
// Delivery failures surface through the logger, never to the HTTP caller.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaLookupTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		Async:                  true,
		AllowAutoTopicCreation: true,
		BatchTimeout:           250 * time.Millisecond,
		Completion: func(messages []kafkago.Message, err error) {
			if err != nil {
				logger.Error("publish lookup events failed", "error", err, "count", len(messages))
			}
		},
	}
	return &Writer{writer: w, logger: logger}
}

// Record enqueues one lookup event.
func (w *Writer) Record(ctx context.Context, event domain.LookupEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and releases the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a LookupEvent into a Kafka message keyed by the
// lower-cased city so lookups for one city share a partition.
func serializeToMessage(event domain.LookupEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize lookup event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strings.ToLower(event.City)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "outcome", Value: []byte(event.Outcome)},
			{Key: "occurred_at", Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
