package selection

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	txcontext "riskgate/pkg/platform/tx"
)

// PostgresStore persists answer selections in the
// risk_profile_question_selection table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) q(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, sel *models.Selection) error {
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO risk_profile_question_selection (id_investment_account_natural, id_responses_risk_profile)
		VALUES ($1, $2)
		RETURNING id_risk_profile_question_selection
	`, int64(sel.AccountID), int64(sel.ResponseID)).Scan(&sel.ID)
	if err != nil {
		return fmt.Errorf("create selection: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByAccount(ctx context.Context, accountID id.AccountID) ([]*models.Selection, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id_risk_profile_question_selection, id_investment_account_natural, id_responses_risk_profile
		FROM risk_profile_question_selection
		WHERE id_investment_account_natural = $1
		ORDER BY id_risk_profile_question_selection
	`, int64(accountID))
	if err != nil {
		return nil, fmt.Errorf("list selections by account: %w", err)
	}
	return scanSelections(rows)
}

func (s *PostgresStore) ListByAccountAndResponses(ctx context.Context, accountID id.AccountID, responseIDs []id.ResponseID) ([]*models.Selection, error) {
	if len(responseIDs) == 0 {
		return nil, nil
	}
	raw := make([]int64, len(responseIDs))
	for i, rid := range responseIDs {
		raw[i] = int64(rid)
	}
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id_risk_profile_question_selection, id_investment_account_natural, id_responses_risk_profile
		FROM risk_profile_question_selection
		WHERE id_investment_account_natural = $1 AND id_responses_risk_profile = ANY($2)
		ORDER BY id_risk_profile_question_selection
	`, int64(accountID), pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("list selections by account and responses: %w", err)
	}
	return scanSelections(rows)
}

func (s *PostgresStore) DeleteByIDs(ctx context.Context, ids []id.SelectionID) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]int64, len(ids))
	for i, sid := range ids {
		raw[i] = int64(sid)
	}
	if _, err := s.q(ctx).ExecContext(ctx, `
		DELETE FROM risk_profile_question_selection
		WHERE id_risk_profile_question_selection = ANY($1)
	`, pq.Array(raw)); err != nil {
		return fmt.Errorf("delete selections: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountByAccount(ctx context.Context, accountID id.AccountID) (int, error) {
	var count int
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM risk_profile_question_selection
		WHERE id_investment_account_natural = $1
	`, int64(accountID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count selections: %w", err)
	}
	return count, nil
}

func scanSelections(rows *sql.Rows) ([]*models.Selection, error) {
	defer rows.Close()
	var out []*models.Selection
	for rows.Next() {
		var sel models.Selection
		if err := rows.Scan(&sel.ID, &sel.AccountID, &sel.ResponseID); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		out = append(out, &sel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selections: %w", err)
	}
	return out, nil
}
