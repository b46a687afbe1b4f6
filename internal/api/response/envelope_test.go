package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitstop-labs/pitstop/internal/api/response"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	response.Success(w, http.StatusOK, "done", map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	env := decode(t, w)
	assert.Equal(t, true, env["success"])
	assert.Equal(t, "done", env["message"])
	assert.Equal(t, map[string]any{"key": "value"}, env["data"])
	assert.NotContains(t, env, "error")
}

func TestSuccess_NullData(t *testing.T) {
	w := httptest.NewRecorder()
	response.Success(w, http.StatusOK, "deleted", nil)

	env := decode(t, w)
	assert.Equal(t, true, env["success"])
	require.Contains(t, env, "data")
	assert.Nil(t, env["data"])
}

func TestErr(t *testing.T) {
	w := httptest.NewRecorder()
	response.Err(w, http.StatusNotFound, response.CodeNotFound, "Car not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	env := decode(t, w)
	assert.Equal(t, false, env["success"])
	assert.Nil(t, env["data"])

	apiErr := env["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", apiErr["code"])
	assert.Equal(t, "Car not found", apiErr["message"])
	assert.NotContains(t, apiErr, "details")
}

func TestErrWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	response.ErrWithDetails(w, http.StatusBadRequest, response.CodeValidationError, "name is required",
		map[string]string{"field": "name"})

	env := decode(t, w)
	apiErr := env["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", apiErr["code"])
	assert.Equal(t, map[string]any{"field": "name"}, apiErr["details"])
}
