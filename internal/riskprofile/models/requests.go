package models

import "encoding/json"

// Request bodies arrive with IDs as JSON numbers or digit strings depending
// on the frontend code path, so ID fields decode through flexString.

// flexString accepts a JSON string or number and keeps the raw text for
// format validation downstream.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	// Numbers keep their literal text form; anything else fails validation
	// later rather than during decode.
	*f = flexString(string(data))
	return nil
}

// RecordSelectionRequest is the body of POST /postRiskProfileQuestionSelection.
type RecordSelectionRequest struct {
	AccountID  flexString `json:"id_investment_account_natural"`
	ResponseID flexString `json:"id_responses_risk_profile"`
}

// AccountIDRaw returns the account ID exactly as sent.
func (r *RecordSelectionRequest) AccountIDRaw() string { return string(r.AccountID) }

// ResponseIDRaw returns the response ID exactly as sent.
func (r *RecordSelectionRequest) ResponseIDRaw() string { return string(r.ResponseID) }

// CreateProfileRequest is the body of POST /postRiskProfileForAccount.
type CreateProfileRequest struct {
	AccountID flexString `json:"id_investment_account_natural"`
}

// AccountIDRaw returns the account ID exactly as sent.
func (r *CreateProfileRequest) AccountIDRaw() string { return string(r.AccountID) }

// OverrideScaleRequest is the body of PUT /UpdateRiskProfileScale.
type OverrideScaleRequest struct {
	AccountID flexString `json:"id_investment_account_natural"`
	ScaleID   flexString `json:"id_scales"`
}

// AccountIDRaw returns the account ID exactly as sent.
func (r *OverrideScaleRequest) AccountIDRaw() string { return string(r.AccountID) }

// ScaleIDRaw returns the scale ID exactly as sent.
func (r *OverrideScaleRequest) ScaleIDRaw() string { return string(r.ScaleID) }
