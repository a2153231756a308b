package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/internal/interfaces/http/response"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestSuccess(t *testing.T) {
	c, w := newTestContext()

	response.Success(c, http.StatusCreated, gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"abc"`)
}

func TestError_AppError(t *testing.T) {
	c, w := newTestContext()

	response.Error(c, domainerrors.NotFound("deposit order not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "deposit order not found", body["message"])
}

func TestError_PlainErrorBecomesInternal(t *testing.T) {
	c, w := newTestContext()

	response.Error(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL", body["code"])
	// the raw database error never leaks to the client
	assert.NotContains(t, body["message"], "pq:")
}

func TestErrorWithStatus(t *testing.T) {
	c, w := newTestContext()

	response.ErrorWithStatus(c, http.StatusUnauthorized, "UNAUTHORIZED", "signature mismatch")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "signature mismatch")
}
