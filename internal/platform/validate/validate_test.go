package validate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petshub/internal/platform/apperr"
)

type registerBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestDecodeJSON_ReportsFieldsByJSONName(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","password":"123"}`))

	var body registerBody
	err := DecodeJSON(req, &body)
	require.Error(t, err)

	typed := apperr.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperr.CodeValidation, typed.Code())

	details := typed.Details().(map[string]string)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 6 characters", details["password"])
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"secret","admin":true}`))

	var body registerBody
	err := DecodeJSON(req, &body)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestDecodeJSON_OK(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"secret"}`))

	var body registerBody
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, "a@b.co", body.Email)
}

func TestVar_UUID(t *testing.T) {
	assert.NoError(t, Var("petId", "7b0c4a52-2b8e-4a39-9d4f-0f8e6f2a1c11", "required,uuid"))

	err := Var("petId", "not-a-uuid", "required,uuid")
	typed := apperr.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "must be a valid UUID", typed.Details().(map[string]string)["petId"])
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=500&bad=x", nil)

	page, err := QueryInt(req, "page", 1, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 3, page)

	def, err := QueryInt(req, "missing", 12, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 12, def)

	_, err = QueryInt(req, "limit", 12, 1, 100)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	_, err = QueryInt(req, "bad", 1, 1, 10)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}
