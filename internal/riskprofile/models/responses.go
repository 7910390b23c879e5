package models

// ScalesResponse wraps the scale table read.
type ScalesResponse struct {
	Scales []*Scale `json:"scales"`
}

// CreatedProfileResponse is returned when a risk profile is computed and
// persisted for an account.
type CreatedProfileResponse struct {
	OK          bool         `json:"ok"`
	RiskProfile *RiskProfile `json:"createdRiskProfile"`
}

// UpdatedProfileResponse is returned when the scale override changes the
// stored profile.
type UpdatedProfileResponse struct {
	OK          bool         `json:"ok"`
	RiskProfile *RiskProfile `json:"updatedRiskProfile"`
}

// NoopResponse is returned when an idempotent operation had nothing to do.
type NoopResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// CreatedSelectionResponse is returned when a question selection is recorded.
type CreatedSelectionResponse struct {
	OK   bool       `json:"ok"`
	Data *Selection `json:"data"`
}

// QuestionsResponse wraps the country-scoped question lookup.
type QuestionsResponse struct {
	OK        bool        `json:"ok"`
	Questions []*Question `json:"getQuestions"`
}
