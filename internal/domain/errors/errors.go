package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches errors that share the same error code, so a copy made by WithDetails
// still matches its predefined error.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// Predefined error types
var (
	// Vehicle-related errors
	ErrVehicleNotFound = NewBaseError(
		http.StatusNotFound,
		"VEHICLE_NOT_FOUND",
		"Vehicle not found",
		"",
	)

	ErrVehicleOwnershipViolation = NewBaseError(
		http.StatusForbidden,
		"VEHICLE_OWNERSHIP_VIOLATION",
		"You do not have access to this vehicle",
		"",
	)

	// Reminder-related errors
	ErrReminderNotFound = NewBaseError(
		http.StatusNotFound,
		"REMINDER_NOT_FOUND",
		"Service reminder not found",
		"",
	)

	// Subscription-related errors
	ErrSubscriptionNotFound = NewBaseError(
		http.StatusNotFound,
		"SUBSCRIPTION_NOT_FOUND",
		"Push subscription not found",
		"",
	)

	ErrInvalidSubscription = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SUBSCRIPTION",
		"Invalid subscription object",
		"",
	)

	// Push-related errors
	ErrPushNotConfigured = NewBaseError(
		http.StatusInternalServerError,
		"PUSH_NOT_CONFIGURED",
		"VAPID keys not configured",
		"",
	)

	// Dispatch-related errors
	ErrDispatchAlreadyRunning = NewBaseError(
		http.StatusConflict,
		"DISPATCH_ALREADY_RUNNING",
		"Reminder check already running",
		"",
	)

	ErrDispatchFailed = NewBaseError(
		http.StatusInternalServerError,
		"DISPATCH_FAILED",
		"Failed to check reminders",
		"",
	)

	// Authentication-related errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrInvalidIDToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_ID_TOKEN",
		"Invalid or expired ID token",
		"",
	)

	ErrCronSecretMismatch = NewBaseError(
		http.StatusUnauthorized,
		"CRON_SECRET_MISMATCH",
		"Unauthorized cron invocation",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// StoreExecuteError represents a document store failure, implementing the AppError interface
type StoreExecuteError struct {
	err     error
	details string
}

// NewStoreExecuteError creates a document store related error
func NewStoreExecuteError(err error, details string) AppError {
	return &StoreExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreExecuteError) Error() string {
	return errors.Wrap(e.err, "document store operation failed").Error()
}

// Unwrap exposes the underlying driver error
func (e *StoreExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StoreExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StoreExecuteError) ErrorCode() string {
	return "STORE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *StoreExecuteError) Message() string {
	return "Document store operation failed"
}

// Details returns detailed error information
func (e *StoreExecuteError) Details() string {
	return e.details
}
