package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"riskgate/internal/platform/middleware"
	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
	audit "riskgate/pkg/platform/audit"
	"riskgate/pkg/platform/sentinel"
)

// NoopScaleUpToDate is returned by OverrideScale when the requested scale is
// already the stored one.
const NoopScaleUpToDate = "The risk profile scale is already up to date."

// CreateProfile scores a completed questionnaire and persists the outcome.
// Requires the account to exist, no prior profile, and exactly the full set
// of answered questions. The total score and matched scale are frozen at this
// moment; later selection changes do not touch the profile.
func (s *Service) CreateProfile(ctx context.Context, accountID id.AccountID) (*models.RiskProfile, error) {
	ctx, span := s.tracer.Start(ctx, "CreateProfile")
	defer span.End()
	start := time.Now()

	if err := s.requireAccount(ctx, accountID, "Natural investment account not found"); err != nil {
		return nil, err
	}

	profile := &models.RiskProfile{AccountID: accountID}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.stores.Profiles.FindByAccount(txCtx, accountID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing profile")
		}
		if existing != nil {
			return dErrors.New(dErrors.CodeConflict,
				"Risk profile already exists for this account. Please update the existing risk profile")
		}

		answered, err := s.stores.Selections.CountByAccount(txCtx, accountID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count selections")
		}
		if answered != models.RequiredQuestionCount {
			return dErrors.New(dErrors.CodeIncompleteInput,
				fmt.Sprintf("Please answer all %d risk profile questions", models.RequiredQuestionCount))
		}

		totalScore, err := s.ComputeTotalScore(txCtx, accountID)
		if err != nil {
			return err
		}

		scales, err := s.stores.Scales.List(txCtx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load scales")
		}
		matched := matchScale(scales, totalScore)
		if matched == nil {
			// Configuration gap: the bands do not cover this score. Refuse
			// to persist a profile pointing at nothing.
			return dErrors.New(dErrors.CodeConflict, "no risk scale configured for the computed total score")
		}

		profile.TotalScore = totalScore
		profile.ScaleID = matched.ID
		if err := s.stores.Profiles.Create(txCtx, profile); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict,
					"Risk profile already exists for this account. Please update the existing risk profile")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist risk profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("riskprofile.total_score", profile.TotalScore),
		attribute.Int64("riskprofile.scale_id", int64(profile.ScaleID)),
	)
	if s.metrics != nil {
		s.metrics.IncrementProfilesCreated()
		s.metrics.ObserveTotalScore(profile.TotalScore)
		s.metrics.ObserveCreateProfile(start)
	}
	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionProfileCreated,
		AccountID: accountID,
		Detail:    fmt.Sprintf("total_score=%d scale=%s", profile.TotalScore, profile.ScaleID),
		RequestID: middleware.GetRequestID(ctx),
	})
	return profile, nil
}

// GetProfiles returns the profiles stored for an existing account. An
// existing account without profiles is a not-found condition, not an empty
// success.
func (s *Service) GetProfiles(ctx context.Context, accountID id.AccountID) ([]*models.RiskProfile, error) {
	if err := s.requireAccount(ctx, accountID, "Natural investment account not found"); err != nil {
		return nil, err
	}
	profiles, err := s.stores.Profiles.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load risk profiles")
	}
	if len(profiles) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "No risk profiles found for the specified account")
	}
	return profiles, nil
}

// OverrideScale changes the stored profile's scale reference without
// recomputing the score. Idempotent: overriding with the current scale is a
// no-op success, reported through the second return value.
func (s *Service) OverrideScale(ctx context.Context, accountID id.AccountID, scaleID id.ScaleID) (*models.RiskProfile, bool, error) {
	if err := s.requireAccount(ctx, accountID, "Investment account does not exist"); err != nil {
		return nil, false, err
	}

	if _, err := s.stores.Scales.FindByID(ctx, scaleID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, false, dErrors.New(dErrors.CodeNotFound, "Scales ID does not exist")
		}
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve scale")
	}

	profile, err := s.stores.Profiles.FindByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, false, dErrors.New(dErrors.CodeNotFound,
				"No risk profile found with the provided investment account natural.")
		}
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load risk profile")
	}

	if profile.ScaleID == scaleID {
		return profile, false, nil
	}

	updated, err := s.stores.Profiles.UpdateScale(ctx, profile.ID, scaleID)
	if err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update risk profile scale")
	}

	if s.metrics != nil {
		s.metrics.IncrementScaleOverrides()
	}
	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionScaleOverridden,
		AccountID: accountID,
		Detail:    fmt.Sprintf("scale %s -> %s", profile.ScaleID, scaleID),
		RequestID: middleware.GetRequestID(ctx),
	})
	return updated, true, nil
}

// requireAccount translates account absence into the endpoint's message.
func (s *Service) requireAccount(ctx context.Context, accountID id.AccountID, notFoundMsg string) error {
	exists, err := s.stores.Accounts.Exists(ctx, accountID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check account existence")
	}
	if !exists {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return nil
}
