// Package service implements the risk-profile questionnaire workflow:
// recording per-question selections, scoring a completed questionnaire,
// matching the total against the configured scale table, and maintaining the
// one-profile-per-account record.
package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	riskmetrics "riskgate/internal/riskprofile/metrics"
	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
	audit "riskgate/pkg/platform/audit"
)

// AccountStore answers existence checks for investment accounts. Accounts are
// owned by the onboarding system; this module never mutates them.
type AccountStore interface {
	Exists(ctx context.Context, accountID id.AccountID) (bool, error)
}

// QuestionStore reads the configured questionnaire.
type QuestionStore interface {
	FindByID(ctx context.Context, questionID id.QuestionID) (*models.Question, error)
	ListByCountry(ctx context.Context, countryID id.CountryID) ([]*models.Question, error)
}

// ResponseStore reads the candidate answers and their scores.
type ResponseStore interface {
	FindByID(ctx context.Context, responseID id.ResponseID) (*models.Response, error)
	ListByQuestion(ctx context.Context, questionID id.QuestionID) ([]*models.Response, error)
	ListByIDs(ctx context.Context, responseIDs []id.ResponseID) ([]*models.Response, error)
}

// SelectionStore persists an account's chosen responses.
type SelectionStore interface {
	Create(ctx context.Context, selection *models.Selection) error
	ListByAccount(ctx context.Context, accountID id.AccountID) ([]*models.Selection, error)
	ListByAccountAndResponses(ctx context.Context, accountID id.AccountID, responseIDs []id.ResponseID) ([]*models.Selection, error)
	DeleteByIDs(ctx context.Context, selectionIDs []id.SelectionID) error
	CountByAccount(ctx context.Context, accountID id.AccountID) (int, error)
}

// ScaleStore reads the configured scoring bands.
type ScaleStore interface {
	List(ctx context.Context) ([]*models.Scale, error)
	FindByID(ctx context.Context, scaleID id.ScaleID) (*models.Scale, error)
}

// ProfileStore maintains the one-profile-per-account record. Create must fail
// with sentinel.ErrConflict when a profile already exists for the account.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.RiskProfile) error
	FindByAccount(ctx context.Context, accountID id.AccountID) (*models.RiskProfile, error)
	ListByAccount(ctx context.Context, accountID id.AccountID) ([]*models.RiskProfile, error)
	UpdateScale(ctx context.Context, profileID id.ProfileID, scaleID id.ScaleID) (*models.RiskProfile, error)
}

// Stores bundles the per-entity stores the service depends on.
type Stores struct {
	Accounts   AccountStore
	Questions  QuestionStore
	Responses  ResponseStore
	Selections SelectionStore
	Scales     ScaleStore
	Profiles   ProfileStore
}

// Service orchestrates the questionnaire workflow. Handlers stay thin;
// stores stay dumb.
type Service struct {
	stores  Stores
	tx      StoreTx
	logger  *slog.Logger
	metrics *riskmetrics.Metrics
	auditor *audit.Publisher
	tracer  trace.Tracer
}

type serviceConfig struct {
	tx      StoreTx
	logger  *slog.Logger
	metrics *riskmetrics.Metrics
	auditor *audit.Publisher
}

// Option configures optional service collaborators.
type Option func(*serviceConfig)

// WithTx sets the transactional boundary used for selection replacement and
// profile creation. Defaults to an in-memory serializer.
func WithTx(tx StoreTx) Option {
	return func(cfg *serviceConfig) { cfg.tx = tx }
}

// WithLogger sets the logger used for audit emission failures.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *riskmetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// WithAuditor enables audit event emission on successful mutations.
func WithAuditor(p *audit.Publisher) Option {
	return func(cfg *serviceConfig) { cfg.auditor = p }
}

// NewService wires the questionnaire service.
func NewService(stores Stores, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	tx := cfg.tx
	if tx == nil {
		tx = newInMemoryStoreTx()
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		stores:  stores,
		tx:      tx,
		logger:  logger,
		metrics: cfg.metrics,
		auditor: cfg.auditor,
		tracer:  otel.Tracer("riskgate/riskprofile"),
	}
}

// emitAudit records an audit event; failures are logged, never surfaced.
func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emission failed",
			"action", string(event.Action),
			"account_id", event.AccountID.String(),
			"error", err.Error(),
		)
	}
}
