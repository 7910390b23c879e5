package profile

import (
	"context"
	"sort"
	"sync"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// InMemory keeps risk profiles in memory, enforcing the one-profile-per-account
// rule the same way the database unique index does.
type InMemory struct {
	mu        sync.RWMutex
	profiles  map[id.ProfileID]*models.RiskProfile
	byAccount map[id.AccountID]id.ProfileID
	nextID    id.ProfileID
}

func NewInMemory() *InMemory {
	return &InMemory{
		profiles:  make(map[id.ProfileID]*models.RiskProfile),
		byAccount: make(map[id.AccountID]id.ProfileID),
		nextID:    1,
	}
}

func (s *InMemory) Create(_ context.Context, p *models.RiskProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byAccount[p.AccountID]; exists {
		return sentinel.ErrConflict
	}
	p.ID = s.nextID
	s.nextID++
	cp := *p
	s.profiles[cp.ID] = &cp
	s.byAccount[cp.AccountID] = cp.ID
	return nil
}

func (s *InMemory) FindByAccount(_ context.Context, accountID id.AccountID) (*models.RiskProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pid, ok := s.byAccount[accountID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.profiles[pid]
	return &cp, nil
}

func (s *InMemory) ListByAccount(_ context.Context, accountID id.AccountID) ([]*models.RiskProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.RiskProfile
	for _, p := range s.profiles {
		if p.AccountID == accountID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) UpdateScale(_ context.Context, profileID id.ProfileID, scaleID id.ScaleID) (*models.RiskProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[profileID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	p.ScaleID = scaleID
	cp := *p
	return &cp, nil
}
