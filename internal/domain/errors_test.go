package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindMatching(t *testing.T) {
	err := Unavailablef("vehicle %d already booked", 3)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestErrorMatchingSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create rental: %w", Conflictf("duplicate plate"))
	assert.ErrorIs(t, err, ErrConflict)

	var de *Error
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, KindConflict, de.Kind)
}

func TestStoreFailureWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := StoreFailure("begin transaction", cause)

	assert.ErrorIs(t, err, ErrStoreFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store_failure")
	assert.Contains(t, err.Error(), "begin transaction")
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(StoreFailure("commit transaction", errors.New("timeout"))))

	// Only store failures are retryable; domain outcomes are final.
	assert.False(t, Retryable(Unavailablef("booked")))
	assert.False(t, Retryable(Conflictf("already completed")))
	assert.False(t, Retryable(NotFoundf("no vehicle")))
	assert.False(t, Retryable(nil))
}
