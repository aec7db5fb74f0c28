package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.IsTest = true
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/test", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestErrorHandler_AppErrorStatus(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		_ = c.Error(errors.NotFound("Trip", "trip-404"))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(errors.NotFoundError), resp.Type)
	assert.Equal(t, "404", resp.Code)
	assert.NotEmpty(t, resp.Details)
}

func TestErrorHandler_ValidationDetailsExposed(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		_ = c.Error(errors.ValidationFailed("title is required", "provide a non-empty title"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "provide a non-empty title", resp.Details)
}

func TestErrorHandler_UnknownErrorIs500(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		_ = c.Error(assert.AnError)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(errors.ServerError), resp.Type)
	assert.Equal(t, "Internal Server Error", resp.Message)
}

func TestErrorHandler_NoErrorPassesThrough(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
