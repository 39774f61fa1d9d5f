// Package apierr provides the normalized error shape for API failures.
// Every rejection that leaves the request pipeline is one of these values;
// callers never see transport-specific error types.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Well-known error codes for failures that never reached the server.
const (
	CodeNetwork = "NETWORK_ERROR"
	CodeUnknown = "UNKNOWN_ERROR"
)

// NetworkMessage is the fixed user-facing message for connectivity failures.
const NetworkMessage = "Network error. Please check your connection."

// Error is a normalized API error with code, message, and optional details.
type Error struct {
	Code       string
	Message    string
	Details    any
	HTTPStatus int
	Cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// errorBody is the error envelope the server returns on non-2xx responses.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
	// Some endpoints report through an "error" field instead.
	Err string `json:"error"`
}

// FromResponse normalizes a non-2xx server response. The server-provided
// code, message, and details win when present; otherwise the HTTP status
// fills in.
func FromResponse(status int, body []byte) *Error {
	e := &Error{
		Code:       strconv.Itoa(status),
		Message:    fmt.Sprintf("Request failed (HTTP %d)", status),
		HTTPStatus: status,
	}

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		if parsed.Code != "" {
			e.Code = parsed.Code
		}
		switch {
		case parsed.Message != "":
			e.Message = parsed.Message
		case parsed.Err != "":
			e.Message = parsed.Err
		}
		e.Details = parsed.Details
	}

	return e
}

// Network normalizes a request that was sent but never got a response
// (timeout, DNS failure, connection loss).
func Network(cause error) *Error {
	return &Error{
		Code:    CodeNetwork,
		Message: NetworkMessage,
		Cause:   cause,
	}
}

// Unknown normalizes a failure constructing the request itself.
func Unknown(cause error) *Error {
	msg := "An unknown error occurred"
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &Error{
		Code:    CodeUnknown,
		Message: msg,
		Cause:   cause,
	}
}

// WithMessage returns a copy of err with a more specific user-facing
// message. The code, details, and status are preserved and the original
// error remains reachable via Unwrap, so callers can still match on the
// normalized shape.
func WithMessage(err *Error, msg string) *Error {
	return &Error{
		Code:       err.Code,
		Message:    msg,
		Details:    err.Details,
		HTTPStatus: err.HTTPStatus,
		Cause:      err,
	}
}

// As attempts to convert an error to an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsStatus reports whether err is a normalized error for the given HTTP status.
func IsStatus(err error, status int) bool {
	e, ok := As(err)
	return ok && e.HTTPStatus == status
}

// IsUnauthorized reports whether err is a normalized 401.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsNetwork reports whether err is a connectivity failure.
func IsNetwork(err error) bool {
	e, ok := As(err)
	return ok && e.Code == CodeNetwork
}
