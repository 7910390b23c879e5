// Package kafka mirrors audit events to a Kafka topic. The sink is
// write-only; reads stay on the local store behind the fanout.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaclient "riskgate/internal/platform/kafka"
	id "riskgate/pkg/domain"
	audit "riskgate/pkg/platform/audit"
)

// Sink publishes audit events keyed by account so per-account ordering is
// preserved within a partition.
type Sink struct {
	producer *kafkaclient.Producer
	topic    string
}

// NewSink wraps a connected producer.
func NewSink(producer *kafkaclient.Producer, topic string) *Sink {
	return &Sink{producer: producer, topic: topic}
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.producer.Produce(ctx, s.topic, []byte(event.AccountID.String()), payload)
}

// ListByAccount is unsupported; Kafka is an append-only mirror.
func (s *Sink) ListByAccount(context.Context, id.AccountID) ([]audit.Event, error) {
	return nil, fmt.Errorf("kafka audit sink does not support reads")
}
