// Package migrations tiene el esquema SQL (goose) embebido para postgres y sqlite.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"petshub/internal/platform/logger"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// goose guarda dialecto, FS y logger en estado global.
var (
	mu  sync.Mutex
	log logger.Logger = logger.Nop()
)

// SetLogger manda la salida de goose al logger de la app (default: descartada).
func SetLogger(l logger.Logger) {
	if l == nil {
		l = logger.Nop()
	}
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// gooseLogger adapta logger.Logger a goose.Logger.
type gooseLogger struct {
	l logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), map[string]any{"component": "goose"})
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), map[string]any{"component": "goose"})
	os.Exit(1)
}

// setup asume mu tomado.
func setup(dialect string) error {
	goose.SetBaseFS(files)
	goose.SetLogger(gooseLogger{l: log})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// DirFor devuelve el directorio embebido de cada dialecto.
func DirFor(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "postgres", nil
	case DialectSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", dialect)
	}
}

// Up aplica todas las migraciones pendientes.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	return Run(ctx, db, dialect, "up")
}

// Run ejecuta un comando goose (up, down, status, version, reset, redo) sobre el FS embebido.
func Run(ctx context.Context, db *sql.DB, dialect, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	dir, err := DirFor(dialect)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	defer goose.SetBaseFS(nil)
	if err := setup(dialect); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion sube o baja hasta targetVersion según la versión actual.
func MigrateToVersion(ctx context.Context, db *sql.DB, dialect, targetVersion string) error {
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", targetVersion, err)
	}
	dir, err := DirFor(dialect)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	defer goose.SetBaseFS(nil)
	if err := setup(dialect); err != nil {
		return err
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}
	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if err := goose.DownToContext(ctx, db, dir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}

// Version devuelve la última migración aplicada.
func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	mu.Lock()
	defer mu.Unlock()

	defer goose.SetBaseFS(nil)
	if err := setup(dialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
