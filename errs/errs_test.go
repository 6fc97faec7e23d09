package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestApiErrError(t *testing.T) {
	err := NewBadRequestError("Community name is required")
	assert.Equal(t, "Community name is required", err.Error())

	withDetails := &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRequiredField,
		Details:    "Title must be at least 3 characters",
	}
	assert.Equal(t, "missing required field: Title must be at least 3 characters", withDetails.Error())
}

func TestApiErrUnwrap(t *testing.T) {
	err := NewMissingTokenError()

	assert.True(t, errors.Is(err, ErrMissingToken))
	assert.False(t, errors.Is(err, ErrInvalidToken))
}

func TestGetFullError(t *testing.T) {
	inner := NewDatabaseError("create", "solution", errors.New("connection refused"))
	outer := &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrInternal,
		Cause:      inner,
	}

	full := outer.GetFullError()
	assert.Contains(t, full, "internal server error")
	assert.Contains(t, full, "connection refused")
}

func TestConstructorStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("x").StatusCode)
	assert.Equal(t, http.StatusBadRequest, NewBadRequestError("x").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, NewUnauthorizedError("x").StatusCode)
	assert.Equal(t, http.StatusConflict, NewConflictError("x").StatusCode)
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("x").StatusCode)
	assert.Equal(t, http.StatusServiceUnavailable, NewServiceUnavailableError("x").StatusCode)
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		wantStatus int
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"wrapped record not found", fmt.Errorf("find user: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"unique violation", errors.New(`ERROR: duplicate key value violates unique constraint "idx_communities_name"`), http.StatusConflict},
		{"foreign key violation", errors.New(`ERROR: insert or update on table "solutions" violates foreign key constraint`), http.StatusBadRequest},
		{"connection failure", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
		{"unknown failure", errors.New("syntax error at or near"), http.StatusInternalServerError},
		{"nil cause", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "community", tt.cause)
			assert.Equal(t, tt.wantStatus, err.StatusCode)
			assert.Contains(t, err.Details, "Failed to create community")
		})
	}
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(errors.New("duplicate key value violates unique constraint")))
	assert.False(t, IsDuplicateKey(gorm.ErrRecordNotFound))
	assert.False(t, IsDuplicateKey(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("duplicate key")))
	assert.False(t, IsNotFound(nil))
}

func TestNewRateLimitError(t *testing.T) {
	err := NewRateLimitError("/mars-photos/api/v1/rovers/curiosity/photos", 4)

	assert.Equal(t, http.StatusTooManyRequests, err.StatusCode)
	assert.True(t, errors.Is(err, ErrRateLimitExceeded))
	assert.Contains(t, err.Details, "after 4 attempts")
}

func TestUnsupportedMediaTypeError(t *testing.T) {
	err := NewUnsupportedMediaTypeError("text/html")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "text/html", err.Field)
	assert.Contains(t, err.Details, "only PDF, DOC, DOCX, TXT, JPG, JPEG, PNG")
}
