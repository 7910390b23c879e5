// Package account exposes existence checks for investment accounts. The
// onboarding system owns the account records; this module only references
// them by ID.
package account

import (
	"context"
	"sync"

	id "riskgate/pkg/domain"
)

// InMemory tracks known account IDs for development and tests.
type InMemory struct {
	mu       sync.RWMutex
	accounts map[id.AccountID]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{accounts: make(map[id.AccountID]struct{})}
}

// Add registers an account ID as existing.
func (s *InMemory) Add(accountID id.AccountID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[accountID] = struct{}{}
}

func (s *InMemory) Exists(_ context.Context, accountID id.AccountID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[accountID]
	return ok, nil
}
