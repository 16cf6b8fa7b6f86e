package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"petshub/internal/platform/apperr"
	"petshub/internal/platform/logger"
)

type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type ErrorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func JSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// Error traduce cualquier error al envelope de error. Los 5xx se loguean con la causa;
// hacia afuera solo sale el mensaje público.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := apperr.As(err)
	if typed == nil {
		typed = apperr.Wrap(apperr.CodeInternal, err, "unexpected error")
	}
	meta := apperr.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if meta.HTTPStatus < http.StatusInternalServerError && typed.Message() != "" {
		msg = typed.Message()
	}

	payload := ErrorBody{Code: string(typed.Code()), Message: msg}
	if typed.Code() == apperr.CodeValidation {
		payload.Details = typed.Details()
	}

	if meta.HTTPStatus >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request.error", map[string]any{
			"error":      err,
			"error_code": string(typed.Code()),
			"method":     r.Method,
			"path":       r.URL.Path,
		})
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
