// Package scale reads the configured scoring bands. Scales are reference
// data: this module never writes them outside of seeding.
package scale

import (
	"context"
	"sort"
	"sync"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// InMemory holds the scale table for development and tests.
type InMemory struct {
	mu     sync.RWMutex
	scales map[id.ScaleID]*models.Scale
}

func NewInMemory() *InMemory {
	return &InMemory{scales: make(map[id.ScaleID]*models.Scale)}
}

// Put inserts or replaces a band. Used by seeding and tests.
func (s *InMemory) Put(scale *models.Scale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *scale
	s.scales[scale.ID] = &copied
}

func (s *InMemory) List(_ context.Context) ([]*models.Scale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scales := make([]*models.Scale, 0, len(s.scales))
	for _, scale := range s.scales {
		copied := *scale
		scales = append(scales, &copied)
	}
	sort.Slice(scales, func(i, j int) bool { return scales[i].ID < scales[j].ID })
	return scales, nil
}

func (s *InMemory) FindByID(_ context.Context, scaleID id.ScaleID) (*models.Scale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scale, ok := s.scales[scaleID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *scale
	return &copied, nil
}
