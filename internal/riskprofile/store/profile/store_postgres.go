package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
	txcontext "riskgate/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists risk profiles in the risk_profile table. The table
// carries a unique index on id_investment_account_natural, which backs the
// one-profile-per-account rule.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) q(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, p *models.RiskProfile) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO risk_profile (id_investment_account_natural, total_score, id_scales)
		VALUES ($1, $2, $3)
		RETURNING id_risk_profile
	`, int64(p.AccountID), p.TotalScore, int64(p.ScaleID)).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create risk profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByAccount(ctx context.Context, accountID id.AccountID) (*models.RiskProfile, error) {
	var p models.RiskProfile
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id_risk_profile, id_investment_account_natural, total_score, id_scales
		FROM risk_profile
		WHERE id_investment_account_natural = $1
	`, int64(accountID)).Scan(&p.ID, &p.AccountID, &p.TotalScore, &p.ScaleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find risk profile by account: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) ListByAccount(ctx context.Context, accountID id.AccountID) ([]*models.RiskProfile, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id_risk_profile, id_investment_account_natural, total_score, id_scales
		FROM risk_profile
		WHERE id_investment_account_natural = $1
		ORDER BY id_risk_profile
	`, int64(accountID))
	if err != nil {
		return nil, fmt.Errorf("list risk profiles by account: %w", err)
	}
	defer rows.Close()

	var out []*models.RiskProfile
	for rows.Next() {
		var p models.RiskProfile
		if err := rows.Scan(&p.ID, &p.AccountID, &p.TotalScore, &p.ScaleID); err != nil {
			return nil, fmt.Errorf("scan risk profile: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate risk profiles: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpdateScale(ctx context.Context, profileID id.ProfileID, scaleID id.ScaleID) (*models.RiskProfile, error) {
	var p models.RiskProfile
	err := s.q(ctx).QueryRowContext(ctx, `
		UPDATE risk_profile
		SET id_scales = $2
		WHERE id_risk_profile = $1
		RETURNING id_risk_profile, id_investment_account_natural, total_score, id_scales
	`, int64(profileID), int64(scaleID)).Scan(&p.ID, &p.AccountID, &p.TotalScore, &p.ScaleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update risk profile scale: %w", err)
	}
	return &p, nil
}
