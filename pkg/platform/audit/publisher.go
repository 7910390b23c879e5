package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "riskgate/pkg/domain"
)

// Publisher assigns event identity and hands events to the configured store.
// In sync mode Emit blocks on the store; with an async buffer Emit enqueues
// and a single worker drains, so slow sinks never sit on the request path.
type Publisher struct {
	store Store
	inbox chan Event
	done  chan struct{}
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous emission with the given queue size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

// NewPublisher creates a publisher backed by the given store.
func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.done = make(chan struct{})
		go p.drain()
	}
	return p
}

func (p *Publisher) drain() {
	defer close(p.done)
	for event := range p.inbox {
		// Detached context: the originating request may be gone already.
		_ = p.store.Append(context.Background(), event)
	}
}

// Emit records an event. Identity and timestamp are filled in when absent.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if p.inbox != nil {
		select {
		case p.inbox <- event:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.store.Append(ctx, event)
}

// List returns the audit trail for one account.
func (p *Publisher) List(ctx context.Context, accountID id.AccountID) ([]Event, error) {
	return p.store.ListByAccount(ctx, accountID)
}

// Close stops the async worker after the queue drains. Safe in sync mode.
func (p *Publisher) Close() {
	if p.inbox != nil {
		close(p.inbox)
		<-p.done
	}
}
