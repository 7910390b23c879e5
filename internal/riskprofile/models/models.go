// Package models defines the risk-profile questionnaire entities. JSON tags
// keep the wire format the investor portal frontend already consumes.
package models

import (
	id "riskgate/pkg/domain"
	dErrors "riskgate/pkg/domain-errors"
)

// RequiredQuestionCount is the number of questionnaire answers an account
// must have before a risk profile can be created.
const RequiredQuestionCount = 6

// Question is a risk-questionnaire item, scoped to a country. Questions are
// immutable once configured; this service only reads them.
type Question struct {
	ID        id.QuestionID `json:"id_risk_profile_questions"`
	CountryID id.CountryID  `json:"id_country"`
	Text      string        `json:"question_text"`
}

// Response is one selectable answer to a Question. The associated score may
// be negative or zero.
type Response struct {
	ID         id.ResponseID `json:"id_responses_risk_profile"`
	QuestionID id.QuestionID `json:"id_risk_profile_questions"`
	Text       string        `json:"response_text"`
	Score      int           `json:"associated_response_score"`
}

// Selection records an account's chosen response for the response's parent
// question.
//
// Invariant: at most one Selection per (account, question). Re-answering a
// question deletes the prior selection(s) before inserting the new one; there
// is no in-place update and no history.
type Selection struct {
	ID         id.SelectionID `json:"id_risk_profile_question_selection"`
	AccountID  id.AccountID   `json:"id_investment_account_natural"`
	ResponseID id.ResponseID  `json:"id_responses_risk_profile"`

	// Response is populated on list reads for the frontend; nil elsewhere.
	Response *Response `json:"responses_risk_profile,omitempty"`
}

// Scale is a scoring band. Bands are expected to be contiguous and
// non-overlapping, but that is a configuration concern this service does not
// enforce at runtime.
type Scale struct {
	ID          id.ScaleID `json:"id_scales"`
	Description string     `json:"scale_description"`
	MinValue    int        `json:"min_value"`
	MaxValue    int        `json:"max_value"`
}

// Contains reports whether the total score falls inside the band.
func (s *Scale) Contains(totalScore int) bool {
	return totalScore >= s.MinValue && totalScore <= s.MaxValue
}

// Validate rejects bands whose bounds are inverted. Used when seeding.
func (s *Scale) Validate() error {
	if s.MinValue > s.MaxValue {
		return dErrors.New(dErrors.CodeInvariantViolation, "scale min_value exceeds max_value")
	}
	return nil
}

// RiskProfile is the persisted scoring outcome for an account.
//
// Invariant: exactly one RiskProfile per account. The total score and scale
// are frozen at creation time and never re-derived from selections; the scale
// reference can only change through the explicit override operation.
type RiskProfile struct {
	ID         id.ProfileID `json:"id_risk_profile"`
	AccountID  id.AccountID `json:"id_investment_account_natural"`
	TotalScore int          `json:"total_score"`
	ScaleID    id.ScaleID   `json:"id_scales"`
}
