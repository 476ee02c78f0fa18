package errorutil_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/spec-kit/customer-service/pkg/util/errorutil"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, apperrors.ToDomainError(nil))
	})

	t.Run("domain errors are preserved", func(t *testing.T) {
		original := apperrors.NewConflict("email already in use", map[string]any{"email": "a@x.com"})
		mapped := apperrors.ToDomainError(original)
		assert.Equal(t, "CONFLICT", mapped.Code)
		assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
		assert.Equal(t, "a@x.com", mapped.Details["email"])
	})

	t.Run("wrapped domain errors unwrap", func(t *testing.T) {
		wrapped := errors.Join(errors.New("outer"), apperrors.NewValidationError("bad input", nil))
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(wrapped).Code)
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		mapped := apperrors.ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, "NOT_FOUND", mapped.Code)
		assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		mapped := apperrors.ToDomainError(errors.New("boom"))
		assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
		assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	})
}
