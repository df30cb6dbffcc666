package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateRegistrationIsConflict(t *testing.T) {
	err := NewDuplicateRegistrationError("")

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.NotErrorIs(t, err, ErrEventFull)
	assert.Equal(t, "One or more participants are already registered for this event.", err.Error())
}

func TestEventFullMessage(t *testing.T) {
	err := NewEventFullError()

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrEventFull)
	assert.Equal(t, "Event registrations are full.", err.Error())
}

func TestDependencyErrorRetryable(t *testing.T) {
	timeout := fmt.Errorf("query: %w", context.DeadlineExceeded)

	assert.True(t, IsRetryable(NewDependencyError("failed to load event", timeout)))
	assert.False(t, IsRetryable(NewDependencyError("failed to load event", errors.New("syntax error"))))
	assert.True(t, IsRetryable(NewRetryableError("serialization failure", errors.New("40001"))))
	assert.False(t, IsRetryable(NewConflictError("nope")))
}

func TestDependencyErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("service: %w", NewDependencyError("failed to list posts", cause))

	assert.ErrorIs(t, err, ErrDependency)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to list posts", Message(err, "fallback"))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("raw"), "fallback"))
	assert.Equal(t, "fallback", Message(nil, "fallback"))
}

func TestIsMatchesAnyOfList(t *testing.T) {
	err := NewResourceNotFoundError("Post not found")

	assert.True(t, Is(err, ErrConflict, ErrResourceNotFound))
	assert.False(t, Is(err, ErrConflict, ErrPermissionDenied))
}
