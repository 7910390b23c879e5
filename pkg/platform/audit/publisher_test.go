package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "riskgate/pkg/domain"
	audit "riskgate/pkg/platform/audit"
	auditmemory "riskgate/pkg/platform/audit/store/memory"
)

func TestEmitAssignsIdentity(t *testing.T) {
	store := auditmemory.NewInMemoryStore()
	publisher := audit.NewPublisher(store)

	err := publisher.Emit(context.Background(), audit.Event{
		Action:    audit.ActionProfileCreated,
		AccountID: id.AccountID(7),
		Detail:    "total_score=42",
	})
	require.NoError(t, err)

	events, err := store.ListByAccount(context.Background(), id.AccountID(7))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, audit.ActionProfileCreated, events[0].Action)
}

func TestAsyncEmitDrainsOnClose(t *testing.T) {
	store := auditmemory.NewInMemoryStore()
	publisher := audit.NewPublisher(store, audit.WithAsyncBuffer(16))

	for i := 0; i < 10; i++ {
		require.NoError(t, publisher.Emit(context.Background(), audit.Event{
			Action:    audit.ActionSelectionRecorded,
			AccountID: id.AccountID(1),
		}))
	}
	publisher.Close()

	events, err := store.ListByAccount(context.Background(), id.AccountID(1))
	require.NoError(t, err)
	assert.Len(t, events, 10)
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("sink down")
}

func (failingStore) ListByAccount(context.Context, id.AccountID) ([]audit.Event, error) {
	return nil, errors.New("sink down")
}

func TestFanoutKeepsWritingPastFailures(t *testing.T) {
	memory := auditmemory.NewInMemoryStore()
	fanout := audit.NewFanout(memory, failingStore{})

	event := audit.Event{
		ID:        "evt-1",
		Action:    audit.ActionScaleOverridden,
		AccountID: id.AccountID(3),
		Timestamp: time.Now().UTC(),
	}
	err := fanout.Append(context.Background(), event)
	require.Error(t, err, "the failing sink surfaces its error")

	events, listErr := memory.ListByAccount(context.Background(), id.AccountID(3))
	require.NoError(t, listErr)
	assert.Len(t, events, 1, "the healthy store still received the event")
}

func TestFanoutReadsFromFirstStore(t *testing.T) {
	memory := auditmemory.NewInMemoryStore()
	fanout := audit.NewFanout(memory, failingStore{})

	err := fanout.Append(context.Background(), audit.Event{
		ID:        "evt-2",
		AccountID: id.AccountID(4),
	})
	require.Error(t, err, "the failing sink still reports")

	events, err := fanout.ListByAccount(context.Background(), id.AccountID(4))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
