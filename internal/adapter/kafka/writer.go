package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/ocean-globe/internal/config"
	"github.com/couchcryptid/ocean-globe/internal/domain"
	json "github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer the sink needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes annotated readings to a Kafka topic, one message per reading.
// It implements pipeline.Sink.
type Writer struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, topic: cfg.KafkaTopic, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Load serializes every reading in the batch and publishes them in a single
// WriteMessages call. Keys are run-scoped so repeated runs never collide.
func (w *Writer) Load(ctx context.Context, batch domain.Batch) error {
	if len(batch.Readings) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(batch.Readings))
	for i := range batch.Readings {
		msg, err := serializeToMessage(batch.RunID, batch.Readings[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish to %s: %w", w.topic, err)
	}
	w.logger.Info("readings published", "topic", w.topic, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// MessageKey identifies reading index within run runID.
func MessageKey(runID string, index int) string {
	return runID + "-" + strconv.Itoa(index)
}

// serializeToMessage marshals an AnnotatedReading into a Kafka message.
func serializeToMessage(runID string, reading domain.AnnotatedReading) (kafkago.Message, error) {
	data, err := json.Marshal(reading)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize reading %d: %w", reading.Index, err)
	}
	return kafkago.Message{
		Key:   []byte(MessageKey(runID, reading.Index)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "region", Value: []byte(reading.Region)},
			{Key: "run_id", Value: []byte(runID)},
			{Key: "processed_at", Value: []byte(reading.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
