package response

import (
	"context"
	"sort"
	"sync"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// InMemory holds the answer catalogue in memory. Used in tests and
// when the server runs without a database.
type InMemory struct {
	mu        sync.RWMutex
	responses map[id.ResponseID]*models.Response
}

func NewInMemory() *InMemory {
	return &InMemory{responses: make(map[id.ResponseID]*models.Response)}
}

func (s *InMemory) Put(r *models.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.responses[r.ID] = &cp
}

func (s *InMemory) FindByID(_ context.Context, responseID id.ResponseID) (*models.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.responses[responseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *InMemory) ListByQuestion(_ context.Context, questionID id.QuestionID) ([]*models.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Response
	for _, r := range s.responses {
		if r.QuestionID == questionID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) ListByIDs(_ context.Context, ids []id.ResponseID) ([]*models.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Response
	for _, rid := range ids {
		if r, ok := s.responses[rid]; ok {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}
