package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petshub/internal/platform/apperr"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestOK_WrapsDataInEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	OK(rr, map[string]int{"likeCount": 2})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["data"].(map[string]any)["likeCount"])
}

func TestError_UsesDomainMessageFor4xx(t *testing.T) {
	sentinel := apperr.New(apperr.CodeConflict, "pet already liked")
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/likes", nil)

	Error(rr, req, fmt.Errorf("service: %w", sentinel))

	assert.Equal(t, http.StatusConflict, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "CONFLICT", body["code"])
	assert.Equal(t, "pet already liked", body["message"])
}

func TestError_HidesInternalCause(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)

	Error(rr, req, errors.New("dial tcp 10.0.0.1: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	assert.Equal(t, "internal server error", body["message"])
}

func TestError_ValidationCarriesDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)

	err := apperr.New(apperr.CodeValidation, "validation failed").WithDetails(map[string]string{"email": "must be a valid email"})
	Error(rr, req, err)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "must be a valid email", body["details"].(map[string]any)["email"])
}
