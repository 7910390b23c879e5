package account

import (
	"context"
	"database/sql"
	"fmt"

	id "riskgate/pkg/domain"
	txcontext "riskgate/pkg/platform/tx"
)

// PostgresStore answers account existence against the onboarding schema.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) querier(ctx context.Context) queryRower {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Exists(ctx context.Context, accountID id.AccountID) (bool, error) {
	var exists bool
	err := s.querier(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM investment_account_natural
			WHERE id_investment_account_natural = $1
		)`, int64(accountID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account existence: %w", err)
	}
	return exists, nil
}
