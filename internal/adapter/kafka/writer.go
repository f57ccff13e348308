package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/jamabandi-etl/internal/config"
	"github.com/couchcryptid/jamabandi-etl/internal/domain"
)

// Writer produces converted records to the sink topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes a batch of converted records in a single WriteMessages
// call for efficiency.
func (w *Writer) LoadBatch(ctx context.Context, msgs []domain.OutputMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]kafkago.Message, len(msgs))
	for i, msg := range msgs {
		out[i] = mapOutputMessage(msg)
	}
	return w.writer.WriteMessages(ctx, out...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// mapOutputMessage converts the pipeline's output envelope into a Kafka
// message, with headers in deterministic key order.
func mapOutputMessage(msg domain.OutputMessage) kafkago.Message {
	out := kafkago.Message{Key: msg.Key, Value: msg.Value}
	for _, key := range []string{"khasra", "processed_at"} {
		if v, ok := msg.Headers[key]; ok {
			out.Headers = append(out.Headers, kafkago.Header{Key: key, Value: []byte(v)})
		}
	}
	for key, v := range msg.Headers {
		if key == "khasra" || key == "processed_at" {
			continue
		}
		out.Headers = append(out.Headers, kafkago.Header{Key: key, Value: []byte(v)})
	}
	return out
}
