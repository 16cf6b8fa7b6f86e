package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"petshub/internal/adapters/storage"
	"petshub/internal/adapters/storage/migrations"
	"petshub/internal/config"
	"petshub/internal/platform/logger"
)

func main() {
	ctx := context.Background()
	log := logger.New(logger.Options{App: "petshub-migrate", Level: logger.Info})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|reset|version")
	version := flag.String("version", "", "target version for -cmd=version")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(log, "config", err)

	log = logger.New(logger.Options{
		App:    "petshub-migrate",
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
	}).With(map[string]any{"cmd": *cmd, "driver": cfg.DB.Driver})

	migrations.SetLogger(log)

	if cfg.DB.Driver == config.DriverMemory {
		fmt.Fprintln(os.Stderr, "nothing to migrate: PETSHUB_DB_DRIVER is memory")
		os.Exit(1)
	}

	backend, err := storage.Open(ctx, cfg.DB)
	requireResource(log, "database", err)
	defer backend.Close()

	log.Info("migrate.ready", nil)

	switch *cmd {
	case "up", "down", "status", "reset":
		if err := migrations.Run(ctx, backend.DB, backend.Dialect, *cmd); err != nil {
			fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
			os.Exit(1)
		}

	case "version":
		if *version == "" {
			v, err := migrations.Version(ctx, backend.DB, backend.Dialect)
			requireResource(log, "version", err)
			fmt.Println("current version:", v)
			return
		}
		if err := migrations.MigrateToVersion(ctx, backend.DB, backend.Dialect, *version); err != nil {
			fmt.Fprintf(os.Stderr, "goose version migrate failed: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}

	log.Info("migrate.done", nil)
}

func requireResource(log logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	log.Error("migrate.resource_failed", map[string]any{"resource": resource, "error": err})
	os.Exit(1)
}
