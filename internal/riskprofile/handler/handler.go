package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"riskgate/internal/platform/middleware"
	"riskgate/internal/riskprofile/models"
	riskservice "riskgate/internal/riskprofile/service"
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
	"riskgate/pkg/platform/httputil"
)

// Service defines the questionnaire operations the handler exposes.
type Service interface {
	Scales(ctx context.Context) ([]*models.Scale, error)
	Questions(ctx context.Context, countryID id.CountryID, questionID id.QuestionID) ([]*models.Question, error)
	QuestionResponses(ctx context.Context, countryID id.CountryID, questionID id.QuestionID) ([]*models.Response, error)
	RecordSelection(ctx context.Context, accountID id.AccountID, responseID id.ResponseID) (*models.Selection, error)
	ListSelections(ctx context.Context, accountID id.AccountID) ([]*models.Selection, error)
	CreateProfile(ctx context.Context, accountID id.AccountID) (*models.RiskProfile, error)
	GetProfiles(ctx context.Context, accountID id.AccountID) ([]*models.RiskProfile, error)
	OverrideScale(ctx context.Context, accountID id.AccountID, scaleID id.ScaleID) (*models.RiskProfile, bool, error)
}

// Handler handles the risk profile questionnaire endpoints.
type Handler struct {
	logger  *slog.Logger
	profile Service
}

// New creates a new risk profile Handler.
func New(profile Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, profile: profile}
}

// Register registers the questionnaire routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	rp := chi.NewRouter()
	rp.Use(middleware.Recovery(h.logger))
	rp.Use(middleware.RequestID)
	rp.Use(middleware.Logger(h.logger))
	rp.Use(middleware.Timeout(30 * time.Second))
	rp.Use(middleware.ContentTypeJSON)

	rp.Get("/api/v1/getScales", h.handleGetScales)
	rp.Get("/api/v1/getRiskProfileQuestions", h.handleGetQuestions)
	rp.Get("/api/v1/getAnswersRiskQuestions", h.handleGetAnswers)
	rp.Get("/api/v1/getRiskProfileQuestionSelection", h.handleGetSelections)
	rp.Get("/api/v1/getRiskProfile", h.handleGetProfile)
	rp.Post("/api/v1/postRiskProfileQuestionSelection", h.handlePostSelection)
	rp.Post("/api/v1/postRiskProfileForAccount", h.handlePostProfile)
	rp.Put("/api/v1/UpdateRiskProfileScale", h.handleUpdateScale)

	r.Mount("/", rp)
}

// handleGetScales returns the full scale catalogue. The endpoint takes no
// parameters and rejects requests that carry any.
func (h *Handler) handleGetScales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if len(r.URL.Query()) > 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request. No query parameters allowed."))
		return
	}

	scales, err := h.profile.Scales(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "list scales", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.ScalesResponse{Scales: scales})
}

func (h *Handler) handleGetQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawCountry := r.URL.Query().Get("id_country")
	rawQuestion := r.URL.Query().Get("id_risk_profile_questions")
	if rawCountry == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Country ID is missing"))
		return
	}
	if rawQuestion == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Risk profile question ID is missing"))
		return
	}
	countryID, err := id.ParseCountryID(rawCountry)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Country ID has an invalid format"))
		return
	}
	questionID, err := id.ParseQuestionID(rawQuestion)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Risk profile question ID has an invalid format"))
		return
	}

	questions, err := h.profile.Questions(ctx, countryID, questionID)
	if err != nil {
		h.writeServiceError(ctx, w, "get questions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.QuestionsResponse{OK: true, Questions: questions})
}

func (h *Handler) handleGetAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawCountry := r.URL.Query().Get("id_country")
	rawQuestion := r.URL.Query().Get("id_risk_profile_questions")
	if rawCountry == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Country ID is required"))
		return
	}
	if rawQuestion == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Risk profile question ID is required"))
		return
	}
	countryID, err := id.ParseCountryID(rawCountry)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid country ID format"))
		return
	}
	questionID, err := id.ParseQuestionID(rawQuestion)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid risk profile question ID format"))
		return
	}

	answers, err := h.profile.QuestionResponses(ctx, countryID, questionID)
	if err != nil {
		h.writeServiceError(ctx, w, "get answers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, answers)
}

func (h *Handler) handleGetSelections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := r.URL.Query().Get("id_investment_account_natural")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Missing investment account ID"))
		return
	}
	accountID, err := id.ParseAccountID(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid account ID format"))
		return
	}

	selections, err := h.profile.ListSelections(ctx, accountID)
	if err != nil {
		h.writeServiceError(ctx, w, "list selections", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, selections)
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := r.URL.Query().Get("id_investment_account_natural")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Missing id_investment_account_natural"))
		return
	}
	accountID, err := id.ParseAccountID(raw)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid format of investment account natural ID"))
		return
	}

	profiles, err := h.profile.GetProfiles(ctx, accountID)
	if err != nil {
		h.writeServiceError(ctx, w, "get risk profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profiles)
}

func (h *Handler) handlePostSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RecordSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.AccountIDRaw() == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Missing account ID"))
		return
	}
	if req.ResponseIDRaw() == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Missing risk profile answers ID"))
		return
	}
	accountID, err := id.ParseAccountID(req.AccountIDRaw())
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "The investment account ID has an invalid format"))
		return
	}
	responseID, err := id.ParseResponseID(req.ResponseIDRaw())
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "The Answer ID has an invalid format"))
		return
	}

	created, err := h.profile.RecordSelection(ctx, accountID, responseID)
	if err != nil {
		h.writeServiceError(ctx, w, "record selection", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.CreatedSelectionResponse{OK: true, Data: created})
}

func (h *Handler) handlePostProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.AccountIDRaw() == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Missing id_investment_account_natural"))
		return
	}
	accountID, err := id.ParseAccountID(req.AccountIDRaw())
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Invalid format of investment account natural ID"))
		return
	}

	created, err := h.profile.CreateProfile(ctx, accountID)
	if err != nil {
		h.writeServiceError(ctx, w, "create risk profile", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.CreatedProfileResponse{OK: true, RiskProfile: created})
}

func (h *Handler) handleUpdateScale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.OverrideScaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.AccountIDRaw() == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Investment account ID is missing"))
		return
	}
	if req.ScaleIDRaw() == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Scales ID is missing"))
		return
	}
	accountID, err := id.ParseAccountID(req.AccountIDRaw())
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Investment account ID has an invalid format"))
		return
	}
	scaleID, err := id.ParseScaleID(req.ScaleIDRaw())
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "Scales ID has an invalid format"))
		return
	}

	updated, changed, err := h.profile.OverrideScale(ctx, accountID, scaleID)
	if err != nil {
		h.writeServiceError(ctx, w, "update risk profile scale", err)
		return
	}
	if !changed {
		httputil.WriteJSON(w, http.StatusOK, models.NoopResponse{OK: true, Message: riskservice.NoopScaleUpToDate})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.UpdatedProfileResponse{OK: true, RiskProfile: updated})
}

// writeServiceError writes the error as-is when it carries a domain code and
// hides the detail behind internal_error otherwise. Unexpected failures are
// logged with the request id.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "request failed",
			"op", op,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
