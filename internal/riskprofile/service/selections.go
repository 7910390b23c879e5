package service

import (
	"context"
	"errors"

	"riskgate/internal/platform/middleware"
	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
	audit "riskgate/pkg/platform/audit"
	"riskgate/pkg/platform/sentinel"
)

// RecordSelection stores the account's chosen response for the response's
// parent question, replacing any prior choice for that question. Replacement
// is delete-then-create inside a transaction; no history is kept.
func (s *Service) RecordSelection(ctx context.Context, accountID id.AccountID, responseID id.ResponseID) (*models.Selection, error) {
	ctx, span := s.tracer.Start(ctx, "RecordSelection")
	defer span.End()

	response, err := s.stores.Responses.FindByID(ctx, responseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "risk profile answer not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve answer")
	}

	siblings, err := s.stores.Responses.ListByQuestion(ctx, response.QuestionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve question answers")
	}
	siblingIDs := make([]id.ResponseID, 0, len(siblings))
	for _, sibling := range siblings {
		siblingIDs = append(siblingIDs, sibling.ID)
	}

	selection := &models.Selection{
		AccountID:  accountID,
		ResponseID: responseID,
	}
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.stores.Selections.ListByAccountAndResponses(txCtx, accountID, siblingIDs)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load prior selections")
		}
		if len(existing) > 0 {
			priorIDs := make([]id.SelectionID, 0, len(existing))
			for _, prior := range existing {
				priorIDs = append(priorIDs, prior.ID)
			}
			if err := s.stores.Selections.DeleteByIDs(txCtx, priorIDs); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to replace prior selection")
			}
		}
		if err := s.stores.Selections.Create(txCtx, selection); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record selection")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementSelectionsRecorded()
	}
	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionSelectionRecorded,
		AccountID: accountID,
		Detail:    "response " + responseID.String(),
		RequestID: middleware.GetRequestID(ctx),
	})
	return selection, nil
}

// ListSelections returns the account's current selections with each chosen
// response embedded for the frontend.
func (s *Service) ListSelections(ctx context.Context, accountID id.AccountID) ([]*models.Selection, error) {
	selections, err := s.stores.Selections.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load selections")
	}
	if len(selections) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "No risk profile answers found")
	}

	responseIDs := make([]id.ResponseID, 0, len(selections))
	for _, selection := range selections {
		responseIDs = append(responseIDs, selection.ResponseID)
	}
	responses, err := s.stores.Responses.ListByIDs(ctx, responseIDs)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load selected answers")
	}
	byID := make(map[id.ResponseID]*models.Response, len(responses))
	for _, response := range responses {
		byID[response.ID] = response
	}
	for _, selection := range selections {
		selection.Response = byID[selection.ResponseID]
	}
	return selections, nil
}
