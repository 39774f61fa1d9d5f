package resio

import (
	"fmt"
	"regexp"
)

// ValidationError reports input rejected before any request was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "is not a valid email address"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	return nil
}

func validateRequired(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func validatePositiveID(field string, id int) error {
	if id <= 0 {
		return &ValidationError{Field: field, Reason: "must be a positive id"}
	}
	return nil
}

func validateRSVP(status string) error {
	switch status {
	case RSVPGoing, RSVPMaybe, RSVPDeclined:
		return nil
	}
	return &ValidationError{Field: "status", Reason: "must be going, maybe, or declined"}
}

func validatePagination(page, perPage int) error {
	if page < 1 {
		return &ValidationError{Field: "page", Reason: "must be at least 1"}
	}
	if perPage < 1 || perPage > 100 {
		return &ValidationError{Field: "perPage", Reason: "must be between 1 and 100"}
	}
	return nil
}
