package router

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"petshub/docs"
	"petshub/internal/adapters/auth/password"
	mem "petshub/internal/adapters/storage/memory"
	"petshub/internal/domain/likes"
	"petshub/internal/domain/pets"
	"petshub/internal/domain/users"
	"petshub/internal/middleware"
	"petshub/internal/platform/apperr"
	"petshub/internal/platform/logger"
	"petshub/internal/platform/metrics"
	"petshub/internal/platform/respond"
	"petshub/internal/ports/auth"
)

var errRouteNotFound = apperr.New(apperr.CodeNotFound, "route not found")

// Stores son los repos que usa la API; todos vacíos => in-memory.
type Stores struct {
	Users     users.Repository
	Pets      pets.Repository
	UserLikes likes.Ledger
	AnonLikes likes.Ledger
}

func (s Stores) complete() bool {
	return s.Users != nil && s.Pets != nil && s.UserLikes != nil && s.AnonLikes != nil
}

func (s Stores) empty() bool {
	return s.Users == nil && s.Pets == nil && s.UserLikes == nil && s.AnonLikes == nil
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev, header X-Debug-User-ID)
	TokenIssuer  auth.TokenIssuer
	Hasher       users.PasswordHasher // nil => bcrypt con costo por defecto

	Stores Stores
	Logger logger.Logger

	// Rate limit de like/unlike; store nil lo desactiva.
	RateLimitStore middleware.RateLimitStore
	LikeLimit      middleware.RateLimitPolicy

	CORSOrigins []string

	// Registry nil => sin métricas ni /metrics.
	Registry *prometheus.Registry

	Swagger bool
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.TokenIssuer == nil {
		return nil, errors.New("router: token issuer is required")
	}

	stores := opts.Stores
	switch {
	case stores.empty():
		s := mem.NewStore()
		stores = Stores{Users: s.Users(), Pets: s.Pets(), UserLikes: s.UserLikes(), AnonLikes: s.AnonLikes()}
	case !stores.complete():
		return nil, errors.New("router: stores must be all set or all empty")
	}

	hasher := opts.Hasher
	if hasher == nil {
		hasher = password.NewHasher(0)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	var reg prometheus.Registerer
	if opts.Registry != nil {
		reg = opts.Registry
	}
	httpMetrics := metrics.NewHTTPMetrics(reg)
	likeMetrics := metrics.NewLikeMetrics(reg)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log, httpMetrics))
	r.Use(middleware.Recover)
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.AnonymousID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond.OK(w, map[string]string{"status": "ok"})
	})
	if opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}
	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		))
	}

	// Services por módulo
	usersSvc := users.NewService(stores.Users, hasher, opts.TokenIssuer)
	petsSvc := pets.NewService(stores.Pets, usersSvc)
	likesSvc := likes.NewService(stores.UserLikes, stores.AnonLikes, petsSvc, likeMetrics)

	likeLimit := opts.LikeLimit
	if likeLimit.Name == "" {
		likeLimit.Name = "likes"
	}

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		users.RegisterRoutes(api, usersSvc)
		pets.RegisterRoutes(api, petsSvc, likesSvc)
		likes.RegisterRoutes(api, likesSvc, middleware.RateLimit(likeLimit, opts.RateLimitStore))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, errRouteNotFound)
	})

	return r, nil
}
