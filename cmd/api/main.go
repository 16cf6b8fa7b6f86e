package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	jwtauth "petshub/internal/adapters/auth/jwt"
	"petshub/internal/adapters/auth/password"
	redisstore "petshub/internal/adapters/cache/redis"
	"petshub/internal/adapters/storage"
	"petshub/internal/adapters/storage/migrations"
	"petshub/internal/config"
	"petshub/internal/middleware"
	"petshub/internal/platform/logger"
	"petshub/internal/router"
)

// @title PetsHub API
// @version 1.0
// @description Catálogo de mascotas con likes de usuarios y visitantes anónimos.
// @BasePath /api
func main() {
	log := logger.New(logger.Options{App: "petshub-api", Level: logger.Info})

	if err := godotenv.Load(); err != nil {
		log.Warn("env.file_missing", map[string]any{"hint": "relying on process environment"})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("config.invalid", map[string]any{"error": err})
		os.Exit(1)
	}

	log = logger.New(logger.Options{
		App:    "petshub-api",
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
	})

	if err := run(cfg, log); err != nil {
		log.Error("api.stopped", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("db.close_failed", map[string]any{"error": err})
		}
	}()

	if cfg.DB.AutoMigrate {
		migrations.SetLogger(log.With(map[string]any{"step": "auto_migrate"}))
		if err := backend.Migrate(ctx); err != nil {
			return err
		}
	}
	log.Info("db.ready", map[string]any{"driver": cfg.DB.Driver, "auto_migrate": cfg.DB.AutoMigrate})

	tokens, err := jwtauth.New(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if err != nil {
		return err
	}
	if cfg.JWT.Secret == config.DefaultJWTSecret {
		log.Warn("jwt.default_secret", map[string]any{"env": cfg.App.Env})
	}

	var limiter middleware.RateLimitStore
	if cfg.Redis.Enabled() {
		rc, err := redisstore.New(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		limiter = rc
		log.Info("redis.ready", nil)
	} else {
		log.Warn("ratelimit.disabled", map[string]any{"reason": "PETSHUB_REDIS_URL not set"})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := router.NewRouter(router.Options{
		AuthVerifier: tokens,
		TokenIssuer:  tokens,
		Hasher:       password.NewHasher(cfg.Password.BcryptCost),
		Stores: router.Stores{
			Users:     backend.Users,
			Pets:      backend.Pets,
			UserLikes: backend.UserLikes,
			AnonLikes: backend.AnonLikes,
		},
		Logger:         log,
		RateLimitStore: limiter,
		LikeLimit: middleware.RateLimitPolicy{
			Name:   "likes",
			Window: cfg.LikeLimit.Window,
			Max:    cfg.LikeLimit.Max,

			AnonymousPerIP: cfg.LikeLimit.AnonPerIP,
		},
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Registry:    reg,
		Swagger:     !cfg.App.IsProd(),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api.listening", map[string]any{"addr": srv.Addr, "env": cfg.App.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("api.shutting_down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
