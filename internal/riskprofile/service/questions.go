package service

import (
	"context"
	"errors"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
	"riskgate/pkg/platform/sentinel"
)

// Scales returns the configured scoring bands.
func (s *Service) Scales(ctx context.Context) ([]*models.Scale, error) {
	scales, err := s.stores.Scales.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load scales")
	}
	return scales, nil
}

// Questions returns the questionnaire entries matching both the country and
// the question ID. Both lookups are validated independently so the caller
// learns which one missed.
func (s *Service) Questions(ctx context.Context, countryID id.CountryID, questionID id.QuestionID) ([]*models.Question, error) {
	countryQuestions, err := s.stores.Questions.ListByCountry(ctx, countryID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load questions")
	}
	if len(countryQuestions) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound,
			"No risk profile questions found for the specified country ID")
	}

	if _, err := s.stores.Questions.FindByID(ctx, questionID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound,
				"No risk profile questions found for the specified question ID")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve question")
	}

	// The question may belong to another country; then the intersection is
	// simply empty, which is a valid 200.
	matched := make([]*models.Question, 0, 1)
	for _, question := range countryQuestions {
		if question.ID == questionID {
			matched = append(matched, question)
		}
	}
	return matched, nil
}

// QuestionResponses returns the candidate answers for a question, restricted
// to the given country.
func (s *Service) QuestionResponses(ctx context.Context, countryID id.CountryID, questionID id.QuestionID) ([]*models.Response, error) {
	responses, err := s.stores.Responses.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load answers")
	}
	if len(responses) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "No answers found for the specified question")
	}

	question, err := s.stores.Questions.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "No answers found for the specified question")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve question")
	}
	if question.CountryID != countryID {
		return nil, dErrors.New(dErrors.CodeNotFound, "No answers found for the specified country")
	}
	return responses, nil
}
