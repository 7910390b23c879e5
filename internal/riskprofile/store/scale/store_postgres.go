package scale

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

// PostgresStore reads scoring bands from the scales table.
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

func (s *PostgresStore) List(ctx context.Context) ([]*models.Scale, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT id_scales, scale_description, min_value, max_value
		FROM scales
		ORDER BY id_scales
	`)
	if err != nil {
		return nil, fmt.Errorf("list scales: %w", err)
	}
	defer rows.Close()

	var scales []*models.Scale
	for rows.Next() {
		var scale models.Scale
		if err := rows.Scan(&scale.ID, &scale.Description, &scale.MinValue, &scale.MaxValue); err != nil {
			return nil, fmt.Errorf("scan scale: %w", err)
		}
		scales = append(scales, &scale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scales: %w", err)
	}
	return scales, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, scaleID id.ScaleID) (*models.Scale, error) {
	var scale models.Scale
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id_scales, scale_description, min_value, max_value
		FROM scales
		WHERE id_scales = $1
	`, int64(scaleID)).Scan(&scale.ID, &scale.Description, &scale.MinValue, &scale.MaxValue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find scale: %w", err)
	}
	return &scale, nil
}
