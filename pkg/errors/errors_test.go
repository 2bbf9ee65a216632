package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/drivelane/rental-backend/pkg/errors"
)

func TestAppError_Error(t *testing.T) {
	err := apperrors.NewNotFoundError("vehicle with id 42 not found")
	assert.Equal(t, "NOT_FOUND: vehicle with id 42 not found", err.Error())

	wrapped := apperrors.NewInternalError("query failed", fmt.Errorf("broken pipe"))
	assert.Equal(t, "INTERNAL: query failed: broken pipe", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("broken pipe")
	err := apperrors.NewInternalError("query failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsType(t *testing.T) {
	notFound := apperrors.NewNotFoundError("gone")
	assert.True(t, apperrors.IsType(notFound, apperrors.ErrorTypeNotFound))
	assert.False(t, apperrors.IsType(notFound, apperrors.ErrorTypeConflict))

	// Works through wrapping
	wrapped := fmt.Errorf("outer: %w", apperrors.NewConflictError("taken"))
	assert.True(t, apperrors.IsType(wrapped, apperrors.ErrorTypeConflict))

	assert.False(t, apperrors.IsType(fmt.Errorf("plain"), apperrors.ErrorTypeInternal))
	assert.False(t, apperrors.IsType(nil, apperrors.ErrorTypeInternal))
}
