package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New(ValidationError, "invalid input", "title is required")
	assert.Equal(t, "VALIDATION_ERROR: invalid input (title is required)", err.Error())

	err = New(ServerError, "boom", "")
	assert.Equal(t, "SERVER_ERROR: boom", err.Error())
}

func TestNotFound(t *testing.T) {
	err := NotFound("trip", "abc-123")
	assert.Equal(t, NotFoundError, err.Type)
	assert.Equal(t, http.StatusNotFound, err.GetHTTPStatus())
	assert.Contains(t, err.Detail, "abc-123")
}

func TestWrap(t *testing.T) {
	raw := errors.New("connection refused")
	err := Wrap(raw, DatabaseError, "query failed")
	assert.Equal(t, http.StatusInternalServerError, err.GetHTTPStatus())
	assert.ErrorIs(t, err, raw)

	assert.Nil(t, Wrap(nil, DatabaseError, "ignored"))
}

func TestImportFailed(t *testing.T) {
	err := ImportFailed("could not read file", "no usable title found")
	assert.Equal(t, ImportParseError, err.Type)
	assert.Equal(t, http.StatusBadRequest, err.GetHTTPStatus())
}
