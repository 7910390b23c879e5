// Package question reads the configured questionnaire items.
package question

import (
	"context"
	"sort"
	"sync"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
)

// InMemory holds questions for development and tests.
type InMemory struct {
	mu        sync.RWMutex
	questions map[id.QuestionID]*models.Question
}

func NewInMemory() *InMemory {
	return &InMemory{questions: make(map[id.QuestionID]*models.Question)}
}

// Put inserts or replaces a question. Used by seeding and tests.
func (s *InMemory) Put(question *models.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *question
	s.questions[question.ID] = &copied
}

func (s *InMemory) FindByID(_ context.Context, questionID id.QuestionID) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	question, ok := s.questions[questionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *question
	return &copied, nil
}

func (s *InMemory) ListByCountry(_ context.Context, countryID id.CountryID) ([]*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var questions []*models.Question
	for _, question := range s.questions {
		if question.CountryID == countryID {
			copied := *question
			questions = append(questions, &copied)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}
