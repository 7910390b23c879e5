//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema mirrors the production migrations closely enough for store tests.
const schema = `
CREATE TABLE IF NOT EXISTS investment_account_natural (
	id_investment_account_natural BIGSERIAL PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS risk_profile_questions (
	id_risk_profile_questions BIGSERIAL PRIMARY KEY,
	id_country BIGINT NOT NULL,
	question_text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS responses_risk_profile (
	id_responses_risk_profile BIGSERIAL PRIMARY KEY,
	id_risk_profile_questions BIGINT NOT NULL REFERENCES risk_profile_questions(id_risk_profile_questions),
	response_text TEXT NOT NULL,
	associated_response_score INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS scales (
	id_scales BIGSERIAL PRIMARY KEY,
	scale_description TEXT NOT NULL,
	min_value INTEGER NOT NULL,
	max_value INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS risk_profile_question_selection (
	id_risk_profile_question_selection BIGSERIAL PRIMARY KEY,
	id_investment_account_natural BIGINT NOT NULL REFERENCES investment_account_natural(id_investment_account_natural),
	id_responses_risk_profile BIGINT NOT NULL REFERENCES responses_risk_profile(id_responses_risk_profile)
);

CREATE TABLE IF NOT EXISTS risk_profile (
	id_risk_profile BIGSERIAL PRIMARY KEY,
	id_investment_account_natural BIGINT NOT NULL UNIQUE REFERENCES investment_account_natural(id_investment_account_natural),
	total_score INTEGER NOT NULL,
	id_scales BIGINT NOT NULL REFERENCES scales(id_scales)
);
`

// PostgresContainer wraps a testcontainers Postgres instance with the schema
// already applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sql.DB
	DSN       string
}

// NewPostgresContainer starts a new Postgres container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("riskgate_test"),
		tcpostgres.WithUsername("riskgate"),
		tcpostgres.WithPassword("riskgate"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &PostgresContainer{Container: container, DB: db, DSN: dsn}
}

// TruncateTables truncates the given tables with identity restart and cascade.
// Use between tests to ensure isolation.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	stmt := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", "))
	_, err := p.DB.ExecContext(ctx, stmt)
	return err
}
