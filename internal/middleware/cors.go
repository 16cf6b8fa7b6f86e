package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS acepta y expone X-Anonymous-Id: el front lo genera y lo reenvía en cada request.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", HeaderAnonymousID},
		ExposedHeaders:   []string{HeaderAnonymousID, requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
