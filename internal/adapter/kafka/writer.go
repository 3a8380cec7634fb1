package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/agri-advisor-service/internal/domain"
	"github.com/couchcryptid/agri-advisor-service/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes prediction events to a Kafka topic. Writes are
// asynchronous: Publish returns once the message is queued and delivery
// outcomes are reported through metrics and logs.
type Writer struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates an async Kafka producer for the prediction event topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &Writer{logger: logger, metrics: metrics}
	w.writer = &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           100 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             w.completed,
	}
	return w
}

// Publish queues one prediction event.
func (w *Writer) Publish(ctx context.Context, event domain.PredictionEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and closes the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

func (w *Writer) completed(msgs []kafkago.Message, err error) {
	if err != nil {
		w.metrics.EventsPublished.WithLabelValues("error").Add(float64(len(msgs)))
		w.logger.Warn("prediction events not delivered", "count", len(msgs), "error", err)
		return
	}
	w.metrics.EventsPublished.WithLabelValues("success").Add(float64(len(msgs)))
}

// serializeToMessage marshals a PredictionEvent into a Kafka message.
func serializeToMessage(event domain.PredictionEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize prediction event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_kind", Value: []byte(event.Kind)},
			{Key: "processed_at", Value: []byte(event.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
