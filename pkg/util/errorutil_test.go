package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewValidationError("incomplete draft", map[string]any{"offendingIds": []string{"a_1"}})
	wrapped := fmt.Errorf("submit: %w", original)

	mapped := ToDomainError(wrapped)
	require.NotNil(t, mapped)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	assert.Equal(t, []string{"a_1"}, mapped.Details["offendingIds"])
}

func TestToDomainErrorMapsNoRowsToNotFound(t *testing.T) {
	mapped := ToDomainError(fmt.Errorf("load report: %w", pgx.ErrNoRows))
	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestPersistenceFailureIsDistinctFromNotFound(t *testing.T) {
	failure := ToDomainError(NewPersistenceFailure(errors.New("connection refused")))
	require.NotNil(t, failure)
	assert.Equal(t, "PERSISTENCE_FAILURE", failure.Code)
	assert.Equal(t, http.StatusServiceUnavailable, failure.HTTPStatus)

	notFound := ToDomainError(NewNotFound("inspection report", nil))
	assert.NotEqual(t, failure.Code, notFound.Code)
}

func TestUnauthenticated(t *testing.T) {
	mapped := ToDomainError(NewUnauthenticated("missing session"))
	require.NotNil(t, mapped)
	assert.Equal(t, "UNAUTHENTICATED", mapped.Code)
	assert.Equal(t, http.StatusUnauthorized, mapped.HTTPStatus)
}
