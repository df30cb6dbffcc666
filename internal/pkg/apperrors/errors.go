package apperrors

import (
	"context"
	"errors"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Infrastructure errors
	ErrDependency = errors.New("dependency unavailable")

	// ErrNotificationDelivery is only ever logged. It never reaches a caller.
	ErrNotificationDelivery = errors.New("notification delivery failed")
)

// Registration errors
var (
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrEventFull             = errors.New("event registrations are full")
	ErrTeamNameTaken         = errors.New("team name already taken for this event")
	ErrUnknownParticipant    = errors.New("participant does not exist")
)

// Social errors
var (
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrAlreadyFollowing = errors.New("already following user")
	ErrResultExists     = errors.New("result already posted")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for malformed or missing input
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewDuplicateRegistrationError is the conflict raised when a participant already holds
// a registration for the event.
func NewDuplicateRegistrationError(message string) error {
	if message == "" {
		message = "One or more participants are already registered for this event."
	}
	return &CustomError{
		Err:     ErrConflict,
		Cause:   ErrDuplicateRegistration,
		Message: message,
		Code:    "DUPLICATE_REGISTRATION",
	}
}

// NewEventFullError is the conflict raised once the registration limit is reached.
func NewEventFullError() error {
	return &CustomError{
		Err:     ErrConflict,
		Cause:   ErrEventFull,
		Message: "Event registrations are full.",
		Code:    "EVENT_FULL",
	}
}

// NewDependencyError wraps a store failure. Deadline errors are marked retryable.
func NewDependencyError(message string, cause error) error {
	return &CustomError{
		Err:       ErrDependency,
		Cause:     cause,
		Message:   message,
		Retryable: errors.Is(cause, context.DeadlineExceeded),
	}
}

// NewRetryableError wraps a transient store failure the caller may retry unchanged.
func NewRetryableError(message string, cause error) error {
	return &CustomError{
		Err:       ErrDependency,
		Cause:     cause,
		Message:   message,
		Retryable: true,
	}
}

// NewNotificationDeliveryError wraps a failure inside the notification pipeline.
func NewNotificationDeliveryError(stage string, cause error) error {
	return &CustomError{
		Err:     ErrNotificationDelivery,
		Cause:   cause,
		Message: "notification " + stage + " failed",
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsRetryable reports whether the failure is transient.
func IsRetryable(err error) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Retryable
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Cause     error
	Message   string
	Code      string
	Retryable bool
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause to errors.Is/As.
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// Message returns the user-facing message of err, or fallback when err carries none.
func Message(err error, fallback string) string {
	var customErr *CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
