package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
	txcontext "riskgate/pkg/platform/tx"
)

// PostgresStore reads questions from the risk_profile_questions table.
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

func (s *PostgresStore) FindByID(ctx context.Context, questionID id.QuestionID) (*models.Question, error) {
	var question models.Question
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id_risk_profile_questions, id_country, question_text
		FROM risk_profile_questions
		WHERE id_risk_profile_questions = $1
	`, int64(questionID)).Scan(&question.ID, &question.CountryID, &question.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find question: %w", err)
	}
	return &question, nil
}

func (s *PostgresStore) ListByCountry(ctx context.Context, countryID id.CountryID) ([]*models.Question, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id_risk_profile_questions, id_country, question_text
		FROM risk_profile_questions
		WHERE id_country = $1
		ORDER BY id_risk_profile_questions
	`, int64(countryID))
	if err != nil {
		return nil, fmt.Errorf("list questions by country: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		var question models.Question
		if err := rows.Scan(&question.ID, &question.CountryID, &question.Text); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
