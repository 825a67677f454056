package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/seoulbdc/heatwalk/internal/analysis"
	"github.com/seoulbdc/heatwalk/internal/config"
)

// Writer publishes ranked sites to a Kafka topic.
// It implements pipeline.ResultSink.
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

// Publish serializes one message per ranked site and writes them in a single
// WriteMessages call. Messages are keyed by region so re-runs for the same
// region land on the same partition.
func (w *Writer) Publish(ctx context.Context, res *analysis.Result) error {
	if len(res.Sites) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(res.Sites))
	for i := range res.Sites {
		msg, err := siteToMessage(res, res.Sites[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Info("site rankings published", "run_id", res.RunID, "sites", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// siteToMessage marshals one ranked site into a Kafka message.
func siteToMessage(res *analysis.Result, site analysis.SiteScore) (kafkago.Message, error) {
	data, err := json.Marshal(site)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize site %s: %w", site.Region, err)
	}
	return kafkago.Message{
		Key:   []byte(site.Region),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "run_id", Value: []byte(res.RunID)},
			{Key: "generated_at", Value: []byte(res.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
