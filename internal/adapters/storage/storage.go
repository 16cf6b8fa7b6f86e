// Package storage elige el backend (memory, postgres o sqlite) según la config.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"petshub/internal/adapters/storage/memory"
	"petshub/internal/adapters/storage/migrations"
	"petshub/internal/adapters/storage/postgres"
	"petshub/internal/adapters/storage/sqlite"
	"petshub/internal/config"
	"petshub/internal/domain/likes"
	"petshub/internal/domain/pets"
	"petshub/internal/domain/users"
)

type Backend struct {
	// DB y Dialect quedan vacíos con el driver memory.
	DB      *sql.DB
	Dialect string

	Users     users.Repository
	Pets      pets.Repository
	UserLikes likes.Ledger
	AnonLikes likes.Ledger
}

type repoSet interface {
	Users() users.Repository
	Pets() pets.Repository
	UserLikes() likes.Ledger
	AnonLikes() likes.Ledger
}

func Open(ctx context.Context, cfg config.DBConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return fromSet(nil, "", memory.NewStore()), nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN, postgres.PoolConfig{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return fromSet(db, migrations.DialectPostgres, postgres.NewStore(db)), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return fromSet(db, migrations.DialectSQLite, sqlite.NewStore(db)), nil

	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

func fromSet(db *sql.DB, dialect string, s repoSet) *Backend {
	return &Backend{
		DB:        db,
		Dialect:   dialect,
		Users:     s.Users(),
		Pets:      s.Pets(),
		UserLikes: s.UserLikes(),
		AnonLikes: s.AnonLikes(),
	}
}

// Migrate aplica las migraciones pendientes; no-op en memoria.
func (b *Backend) Migrate(ctx context.Context) error {
	if b.DB == nil {
		return nil
	}
	return migrations.Up(ctx, b.DB, b.Dialect)
}

func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}
