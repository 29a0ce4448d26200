package errors

import (
	"fmt"
	"net/http"
)

// Licensing-specific error types
const (
	ErrorTypeInvalidTransition  ErrorType = "invalid_transition"
	ErrorTypeInvalidExpiration  ErrorType = "invalid_expiration"
	ErrorTypeSeatLimitExceeded  ErrorType = "seat_limit_exceeded"
	ErrorTypeActivationNotFound ErrorType = "activation_not_found"
	ErrorTypeLicenseNotValid    ErrorType = "license_not_valid"
	ErrorTypeExhaustedKeyspace  ErrorType = "exhausted_keyspace"
)

// NewInvalidTransitionError creates an error for an illegal license lifecycle move.
func NewInvalidTransitionError(from, action string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidTransition,
		Message: fmt.Sprintf("cannot %s a license in %s status", action, from),
		Code:    http.StatusBadRequest,
	}
}

// NewInvalidExpirationError creates an error for a renewal or extension whose
// expiration does not advance the current one.
func NewInvalidExpirationError(details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    ErrorTypeInvalidExpiration,
		Message: "new expiration must be later than the current one",
		Code:    http.StatusBadRequest,
		Details: detail,
	}
}

// NewSeatLimitExceededError creates an error for an activation attempt on a
// license with no remaining seats.
func NewSeatLimitExceededError(maxSeats int) *AppError {
	return &AppError{
		Type:    ErrorTypeSeatLimitExceeded,
		Message: fmt.Sprintf("seat limit of %d reached for this license", maxSeats),
		Code:    http.StatusConflict,
	}
}

// NewActivationNotFoundError creates an error for a deactivation with no
// matching active activation.
func NewActivationNotFoundError(instanceID string) *AppError {
	return &AppError{
		Type:    ErrorTypeActivationNotFound,
		Message: "no active activation found for this instance",
		Code:    http.StatusNotFound,
		Details: instanceID,
	}
}

// NewLicenseNotValidError creates an error for an operation on a license that
// is not usable. The reason distinguishes expired, suspended and cancelled.
func NewLicenseNotValidError(reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeLicenseNotValid,
		Message: fmt.Sprintf("license is not valid: %s", reason),
		Code:    http.StatusForbidden,
		Details: reason,
	}
}

// NewExhaustedKeyspaceError creates a fatal error for the key generation
// retry ceiling being hit. This is operator-visible and never retried.
func NewExhaustedKeyspaceError(attempts int) *AppError {
	return &AppError{
		Type:    ErrorTypeExhaustedKeyspace,
		Message: fmt.Sprintf("unable to generate a unique license key after %d attempts", attempts),
		Code:    http.StatusInternalServerError,
	}
}

// IsSeatLimitExceededError checks if the error is a seat limit error
func IsSeatLimitExceededError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeSeatLimitExceeded
}

// IsInvalidTransitionError checks if the error is an invalid transition error
func IsInvalidTransitionError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeInvalidTransition
}

// IsInvalidExpirationError checks if the error is an invalid expiration error
func IsInvalidExpirationError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeInvalidExpiration
}
