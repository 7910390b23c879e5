// Package domainerrors defines the error vocabulary shared by services and
// transport. Services attach a Code to every error they return; the HTTP layer
// maps codes to status lines without inspecting error text.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the class of a domain error. The string value is what
// clients see in the "error" field of an error response.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeIncompleteInput    Code = "incomplete_input"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// GatewayError carries a Code alongside a human-readable message and an
// optional wrapped cause.
type GatewayError struct {
	Code    Code
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &GatewayError{Code: code, Message: message}
}

// Wrap annotates err with a code and message while preserving the cause for
// errors.Is / errors.As chains.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &GatewayError{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var gerr *GatewayError
	for errors.As(err, &gerr) {
		if gerr.Code == code {
			return true
		}
		err = gerr.Err
		gerr = nil
	}
	return false
}

// Is is an alias for HasCode; it reads better at call sites that check a
// single code.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// MessageOf returns the outermost domain message, or the plain error text when
// err carries no code.
func MessageOf(err error) string {
	var gerr *GatewayError
	if errors.As(err, &gerr) {
		return gerr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// CodeOf returns the outermost code, defaulting to CodeInternal for errors
// that never went through this package.
func CodeOf(err error) Code {
	var gerr *GatewayError
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error to the HTTP status the transport layer
// should respond with.
func ToHTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeBadRequest, CodeInvalidInput, CodeIncompleteInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvariantViolation:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
