package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"lendgate/pkg/requestcontext"
)

// KafkaProducer is the slice of the platform producer the publisher needs.
type KafkaProducer interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily. When a Kafka
// producer is configured, each event is also published to the audit topic;
// publish failures are logged but never block the decision path.
type Publisher struct {
	store    Store
	producer KafkaProducer
	topic    string
	logger   *slog.Logger
}

func NewPublisher(store Store, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// WithKafka enables fan-out to the given topic.
func (p *Publisher) WithKafka(producer KafkaProducer, topic string) *Publisher {
	p.producer = producer
	p.topic = topic
	return p
}

func (p *Publisher) Record(ctx context.Context, event DecisionEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if err := p.store.Append(ctx, event); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	if p.producer != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal audit event: %w", err)
		}
		if err := p.producer.Produce(ctx, p.topic, []byte(event.CheckID), payload); err != nil {
			p.logger.Error("audit publish failed",
				"check_id", event.CheckID,
				"topic", p.topic,
				"error", err)
		}
	}
	return nil
}

func (p *Publisher) List(ctx context.Context, merchantID string) ([]DecisionEvent, error) {
	return p.store.ListByMerchant(ctx, merchantID)
}
