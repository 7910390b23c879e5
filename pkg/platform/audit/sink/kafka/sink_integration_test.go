//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	kafkaclient "riskgate/internal/platform/kafka"
	id "riskgate/pkg/domain"
	audit "riskgate/pkg/platform/audit"
	auditkafka "riskgate/pkg/platform/audit/sink/kafka"
	"riskgate/pkg/testutil/containers"
)

func TestSinkPublishesEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	broker := containers.GetManager().GetRedpanda(t)
	const topic = "riskgate.audit.test"

	admin, err := kgo.NewClient(kgo.SeedBrokers(broker.Brokers...))
	require.NoError(t, err)
	defer admin.Close()
	_, err = kadm.NewClient(admin).CreateTopics(ctx, 1, 1, nil, topic)
	require.NoError(t, err)

	producer, err := kafkaclient.NewProducer(broker.Brokers)
	require.NoError(t, err)
	defer producer.Close()

	sink := auditkafka.NewSink(producer, topic)
	event := audit.Event{
		ID:        "evt-integration",
		Action:    audit.ActionProfileCreated,
		AccountID: id.AccountID(42),
		Detail:    "total_score=42 scale=2",
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, sink.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	pollCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(pollCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.NotEmpty(t, records)

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, event.ID, got.ID)
	require.Equal(t, event.Action, got.Action)
	require.Equal(t, event.AccountID, got.AccountID)
	require.Equal(t, "42", string(records[0].Key), "events are keyed by account")
}
