package selection

import (
	"context"
	"sort"
	"sync"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
)

// InMemory keeps recorded answer selections in memory.
type InMemory struct {
	mu         sync.RWMutex
	selections map[id.SelectionID]*models.Selection
	nextID     id.SelectionID
}

func NewInMemory() *InMemory {
	return &InMemory{
		selections: make(map[id.SelectionID]*models.Selection),
		nextID:     1,
	}
}

func (s *InMemory) Create(_ context.Context, sel *models.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel.ID = s.nextID
	s.nextID++
	cp := *sel
	s.selections[cp.ID] = &cp
	return nil
}

func (s *InMemory) ListByAccount(_ context.Context, accountID id.AccountID) ([]*models.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Selection
	for _, sel := range s.selections {
		if sel.AccountID == accountID {
			cp := *sel
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) ListByAccountAndResponses(_ context.Context, accountID id.AccountID, responseIDs []id.ResponseID) ([]*models.Selection, error) {
	wanted := make(map[id.ResponseID]struct{}, len(responseIDs))
	for _, rid := range responseIDs {
		wanted[rid] = struct{}{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Selection
	for _, sel := range s.selections {
		if sel.AccountID != accountID {
			continue
		}
		if _, ok := wanted[sel.ResponseID]; ok {
			cp := *sel
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) DeleteByIDs(_ context.Context, ids []id.SelectionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sid := range ids {
		delete(s.selections, sid)
	}
	return nil
}

func (s *InMemory) CountByAccount(_ context.Context, accountID id.AccountID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, sel := range s.selections {
		if sel.AccountID == accountID {
			count++
		}
	}
	return count, nil
}
