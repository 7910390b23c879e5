package audit

import (
	"context"
	"errors"

	id "riskgate/pkg/domain"
)

// Fanout appends to every store and serves reads from the first one. Used to
// mirror events to Kafka while keeping a queryable local trail.
type Fanout struct {
	stores []Store
}

// NewFanout combines stores; at least one is required.
func NewFanout(stores ...Store) *Fanout {
	return &Fanout{stores: stores}
}

func (f *Fanout) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, store := range f.stores {
		if err := store.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) ListByAccount(ctx context.Context, accountID id.AccountID) ([]Event, error) {
	if len(f.stores) == 0 {
		return nil, nil
	}
	return f.stores[0].ListByAccount(ctx, accountID)
}
