package apperror_test

import (
	"errors"
	"testing"

	"github.com/shkhalid/maxerp/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("message only when no cause", func(t *testing.T) {
		err := apperror.New(apperror.CodeNotFound, "leave request not found", 404)

		assert.Equal(t, "leave request not found", err.Error())
	})

	t.Run("wrapped cause appears in the message and unwraps", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := apperror.Wrap(cause, apperror.CodeInternalError, "lookup failed", 500)

		assert.Equal(t, "lookup failed: connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("wrapping nil yields nil", func(t *testing.T) {
		assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "lookup failed", 500))
	})

	t.Run("errors.As finds the typed error through wrapping", func(t *testing.T) {
		inner := apperror.New(apperror.CodeOverlap, "Leave request overlaps with existing request", 422)
		var appErr *apperror.AppError

		assert.ErrorAs(t, inner, &appErr)
		assert.Equal(t, apperror.CodeOverlap, appErr.Code)
		assert.Equal(t, 422, appErr.HTTPStatus)
	})
}
