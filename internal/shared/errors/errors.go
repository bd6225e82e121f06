// Package errors provides application-level error types and utilities.
// It defines the error taxonomy shared by the catalog and subscription
// services: validation, conflict, not found, and authorization errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal_error"
	ErrorTypeBadRequest   ErrorType = "bad_request"
)

// Reason is a machine-readable code identifying the exact rule that failed.
// The HTTP layer passes it through untouched; clients switch on it instead
// of parsing messages.
type Reason string

const (
	ReasonValidationFailed         Reason = "validation_failed"
	ReasonPeriodInvalidForPlanType Reason = "period_invalid_for_plan_type"
	ReasonPlanNotFound             Reason = "plan_not_found"
	ReasonTrainerNotFound          Reason = "trainer_not_found"
	ReasonPlanInactive             Reason = "plan_inactive"
	ReasonPlanInUse                Reason = "plan_in_use"
	ReasonTypeChangeBlocked        Reason = "type_change_blocked"
	ReasonNoActiveSubscription     Reason = "no_active_subscription"
	ReasonWriteConflict            Reason = "conflict"
	ReasonUnauthorized             Reason = "unauthorized"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Reason  Reason    `json:"reason,omitempty"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// WithReason attaches a machine-readable reason code and returns the error.
func (e *AppError) WithReason(reason Reason) *AppError {
	e.Reason = reason
	return e
}

func newError(errType ErrorType, code int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, message, details...).
		WithReason(ReasonValidationFailed)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newError(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newError(ErrorTypeConflict, http.StatusConflict, message, details...)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details...).
		WithReason(ReasonUnauthorized)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newError(ErrorTypeForbidden, http.StatusForbidden, message, details...).
		WithReason(ReasonUnauthorized)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newError(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newError(ErrorTypeBadRequest, http.StatusBadRequest, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasReason reports whether err carries the given reason code.
func HasReason(err error, reason Reason) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Reason == reason
}
