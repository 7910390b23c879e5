// Package domain defines typed identifiers shared across modules. Typing IDs
// prevents cross-entity mixups at compile time; parsing enforces the wire
// format at trust boundaries.
package domain

import (
	"strconv"

	dErrors "riskgate/pkg/domain-errors"
)

// Identifiers are database serials. The wire format is a base-10 digit string
// with no sign, no spaces, and no decimal point.
type (
	AccountID   int64
	QuestionID  int64
	ResponseID  int64
	SelectionID int64
	ScaleID     int64
	ProfileID   int64
	CountryID   int64
)

func (id AccountID) String() string   { return strconv.FormatInt(int64(id), 10) }
func (id QuestionID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id ResponseID) String() string  { return strconv.FormatInt(int64(id), 10) }
func (id SelectionID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id ScaleID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id ProfileID) String() string   { return strconv.FormatInt(int64(id), 10) }
func (id CountryID) String() string   { return strconv.FormatInt(int64(id), 10) }

// parseID validates the digit-string format and converts to int64.
func parseID(s string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "identifier is required")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, dErrors.New(dErrors.CodeInvalidInput, "identifier must contain only digits")
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "identifier out of range")
	}
	return n, nil
}

func ParseAccountID(s string) (AccountID, error) {
	n, err := parseID(s)
	return AccountID(n), err
}

func ParseQuestionID(s string) (QuestionID, error) {
	n, err := parseID(s)
	return QuestionID(n), err
}

func ParseResponseID(s string) (ResponseID, error) {
	n, err := parseID(s)
	return ResponseID(n), err
}

func ParseScaleID(s string) (ScaleID, error) {
	n, err := parseID(s)
	return ScaleID(n), err
}

func ParseCountryID(s string) (CountryID, error) {
	n, err := parseID(s)
	return CountryID(n), err
}
