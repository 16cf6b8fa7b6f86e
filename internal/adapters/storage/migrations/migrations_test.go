package migrations_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petshub/internal/adapters/storage/migrations"
	"petshub/internal/adapters/storage/sqlite"
	"petshub/internal/platform/logger"
)

func TestDirFor(t *testing.T) {
	dir, err := migrations.DirFor(migrations.DialectPostgres)
	require.NoError(t, err)
	assert.Equal(t, "postgres", dir)

	dir, err = migrations.DirFor(migrations.DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", dir)

	_, err = migrations.DirFor("mysql")
	require.Error(t, err)
}

func TestSQLite_UpDownVersion(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite))
	v, err := migrations.Version(ctx, db, migrations.DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	// idempotente
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite))

	require.NoError(t, migrations.Run(ctx, db, migrations.DialectSQLite, "down"))
	v, err = migrations.Version(ctx, db, migrations.DialectSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	_, err = db.ExecContext(ctx, `SELECT name_search FROM pets`)
	require.Error(t, err, "name_search dropped by down")

	require.NoError(t, migrations.MigrateToVersion(ctx, db, migrations.DialectSQLite, "1"))
	_, err = db.ExecContext(ctx, `SELECT 1 FROM anon_likes`)
	require.Error(t, err, "likes tables dropped by down")

	require.NoError(t, migrations.MigrateToVersion(ctx, db, migrations.DialectSQLite, "3"))
	_, err = db.ExecContext(ctx, `SELECT name_search FROM pets`)
	require.NoError(t, err)
}

func TestRun_RequiresDB(t *testing.T) {
	err := migrations.Run(context.Background(), nil, migrations.DialectSQLite, "up")
	require.Error(t, err)
}

func TestUp_LogsThroughAppLogger(t *testing.T) {
	var buf bytes.Buffer
	migrations.SetLogger(logger.New(logger.Options{Level: logger.Info, Output: &buf}))
	t.Cleanup(func() { migrations.SetLogger(nil) })

	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "l.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite))

	out := buf.String()
	assert.Contains(t, out, `"component":"goose"`)
	assert.Contains(t, out, "00001_init.sql")
}
