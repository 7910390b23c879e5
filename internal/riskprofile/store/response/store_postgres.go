package response

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

// PostgresStore reads answers from the responses_risk_profile table.
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

func (s *PostgresStore) FindByID(ctx context.Context, responseID id.ResponseID) (*models.Response, error) {
	var r models.Response
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id_responses_risk_profile, id_risk_profile_questions, response_text, associated_response_score
		FROM responses_risk_profile
		WHERE id_responses_risk_profile = $1
	`, int64(responseID)).Scan(&r.ID, &r.QuestionID, &r.Text, &r.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find response: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) ListByQuestion(ctx context.Context, questionID id.QuestionID) ([]*models.Response, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id_responses_risk_profile, id_risk_profile_questions, response_text, associated_response_score
		FROM responses_risk_profile
		WHERE id_risk_profile_questions = $1
		ORDER BY id_responses_risk_profile
	`, int64(questionID))
	if err != nil {
		return nil, fmt.Errorf("list responses by question: %w", err)
	}
	return scanResponses(rows)
}

func (s *PostgresStore) ListByIDs(ctx context.Context, ids []id.ResponseID) ([]*models.Response, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]int64, len(ids))
	for i, rid := range ids {
		raw[i] = int64(rid)
	}
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id_responses_risk_profile, id_risk_profile_questions, response_text, associated_response_score
		FROM responses_risk_profile
		WHERE id_responses_risk_profile = ANY($1)
	`, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("list responses by ids: %w", err)
	}
	return scanResponses(rows)
}

func scanResponses(rows *sql.Rows) ([]*models.Response, error) {
	defer rows.Close()
	var out []*models.Response
	for rows.Next() {
		var r models.Response
		if err := rows.Scan(&r.ID, &r.QuestionID, &r.Text, &r.Score); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}
