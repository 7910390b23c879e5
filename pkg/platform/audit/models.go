// Package audit captures the compliance-relevant actions of the questionnaire
// workflow. Events are transport-agnostic so stores and sinks can fan out.
package audit

import (
	"context"
	"time"

	id "riskgate/pkg/domain"
)

// Action identifies what happened. Keep values stable; downstream consumers
// key retention policy off them.
type Action string

const (
	ActionSelectionRecorded Action = "selection_recorded"
	ActionProfileCreated    Action = "risk_profile_created"
	ActionScaleOverridden   Action = "scale_overridden"
)

// Event is emitted from domain logic after a successful mutation.
type Event struct {
	ID        string       `json:"id"`
	Action    Action       `json:"action"`
	AccountID id.AccountID `json:"account_id"`
	Detail    string       `json:"detail,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByAccount(ctx context.Context, accountID id.AccountID) ([]Event, error)
}
