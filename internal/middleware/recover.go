package middleware

import (
	"fmt"
	"net/http"

	"petshub/internal/platform/apperr"
	"petshub/internal/platform/logger"
	"petshub/internal/platform/respond"
)

// Recover convierte un panic en 500 con el envelope estándar y lo loguea.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err := fmt.Errorf("panic: %v", rec)
			logger.FromContext(r.Context()).Error("panic.recovered", map[string]any{"panic": fmt.Sprint(rec)})
			respond.Error(w, r, apperr.Wrap(apperr.CodeInternal, err, "panic"))
		}()
		next.ServeHTTP(w, r)
	})
}
