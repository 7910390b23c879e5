package service

import (
	"context"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
)

// ComputeTotalScore sums the scores of every response the account has
// selected. An account with no selections scores 0. Pure read-aggregate;
// deterministic given selection state and order-independent.
func (s *Service) ComputeTotalScore(ctx context.Context, accountID id.AccountID) (int, error) {
	selections, err := s.stores.Selections.ListByAccount(ctx, accountID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load selections")
	}
	if len(selections) == 0 {
		return 0, nil
	}

	responseIDs := make([]id.ResponseID, 0, len(selections))
	for _, selection := range selections {
		responseIDs = append(responseIDs, selection.ResponseID)
	}
	responses, err := s.stores.Responses.ListByIDs(ctx, responseIDs)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load response scores")
	}

	scoreByResponse := make(map[id.ResponseID]int, len(responses))
	for _, response := range responses {
		scoreByResponse[response.ID] = response.Score
	}

	total := 0
	for _, selection := range selections {
		total += scoreByResponse[selection.ResponseID]
	}
	return total, nil
}

// matchScale returns the first configured band containing totalScore, or nil
// when the score falls outside every band. Callers decide what a missing
// match means.
func matchScale(scales []*models.Scale, totalScore int) *models.Scale {
	for _, scale := range scales {
		if scale.Contains(totalScore) {
			return scale
		}
	}
	return nil
}
