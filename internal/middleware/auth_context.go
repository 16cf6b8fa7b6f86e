package middleware

import (
	"context"
	"net/http"
	"strings"

	"petshub/internal/domain/identity"
	"petshub/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey ctxKey = "claims"
	anonKey   ctxKey = "anonymous_id"
)

const (
	HeaderAnonymousID = "X-Anonymous-Id"
	HeaderDebugUserID = "X-Debug-User-ID"
)

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: si viene header X-Debug-User-ID => setea claims.
// - Token inválido o ausente: el request sigue como no autenticado; los handlers deciden.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID)); uid != "" {
					ctx := context.WithValue(r.Context(), claimsKey, auth.Claims{UserID: uid})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// como si no hubiera token: un visitante con token vencido puede seguir como anónimo
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AnonymousID guarda el header X-Anonymous-Id tal cual; se valida recién en GetIdentity.
func AnonymousID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := strings.TrimSpace(r.Header.Get(HeaderAnonymousID)); v != "" {
			r = r.WithContext(context.WithValue(r.Context(), anonKey, v))
		}
		next.ServeHTTP(w, r)
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// UserID devuelve el usuario autenticado o "" si no hay.
func UserID(ctx context.Context) string {
	c, ok := GetClaims(ctx)
	if !ok {
		return ""
	}
	return strings.TrimSpace(c.UserID)
}

// GetIdentity resuelve quién hace el request: usuario, anónimo o nadie.
func GetIdentity(ctx context.Context) (identity.Identity, error) {
	anon, _ := ctx.Value(anonKey).(string)
	return identity.Resolve(UserID(ctx), anon)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
