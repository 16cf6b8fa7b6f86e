package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"petshub/internal/platform/apperr"
	"petshub/internal/platform/logger"
	"petshub/internal/platform/respond"
)

// RateLimitStore cuenta hits por key dentro de una ventana (redis en prod).
type RateLimitStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type RateLimitPolicy struct {
	Name   string
	Window time.Duration
	Max    int

	// AnonymousPerIP topa a todos los anónimos de una misma IP en la ventana,
	// así rotar X-Anonymous-Id no esquiva el límite. 0 lo desactiva.
	AnonymousPerIP int
}

func (p RateLimitPolicy) enabled() bool {
	return p.Window > 0 && p.Max > 0
}

func (p RateLimitPolicy) key(subject string) string {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "" {
		name = "default"
	}
	return fmt.Sprintf("rl:%s:%s", name, subject)
}

// RateLimit limita por identidad (user/anónimo) y, si no hay, por IP.
// Sin store o con política vacía es un no-op.
func RateLimit(policy RateLimitPolicy, store RateLimitStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || !policy.enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buckets := rateBuckets(r, policy)
			for _, b := range buckets {
				count, err := store.IncrWithTTL(r.Context(), policy.key(b.subject), policy.Window)
				if err != nil {
					respond.Error(w, r, apperr.Wrap(apperr.CodeDependency, err, "rate limiting"))
					return
				}
				if count > int64(b.limit) {
					logger.FromContext(r.Context()).Warn("rate_limit.blocked", map[string]any{
						"policy":         policy.Name,
						"subject":        b.subject,
						"count":          count,
						"limit":          b.limit,
						"window_seconds": int(policy.Window.Seconds()),
					})
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(policy.Window.Seconds())))
					respond.Error(w, r, apperr.New(apperr.CodeRateLimit, "too many requests, try again later"))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

type rateBucket struct {
	subject string
	limit   int
}

// rateBuckets: usuario => su id; anónimo => su id y además su IP; nadie => IP.
func rateBuckets(r *http.Request, policy RateLimitPolicy) []rateBucket {
	id, err := GetIdentity(r.Context())
	if err != nil || id.IsNone() {
		return []rateBucket{{subject: "ip:" + clientIP(r), limit: policy.Max}}
	}
	buckets := []rateBucket{{subject: id.String(), limit: policy.Max}}
	if id.IsAnonymous() && policy.AnonymousPerIP > 0 {
		buckets = append(buckets, rateBucket{subject: "anonymous-ip:" + clientIP(r), limit: policy.AnonymousPerIP})
	}
	return buckets
}

// clientIP asume chi RealIP antes en la cadena (RemoteAddr ya viene resuelto).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
