package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petshub/internal/config"
	"petshub/internal/domain/users"
)

func TestOpen_Memory(t *testing.T) {
	b, err := Open(context.Background(), config.DBConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.Nil(t, b.DB)
	require.NoError(t, b.Migrate(context.Background()))
	require.NoError(t, b.Close())

	_, err = b.Users.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestOpen_SQLiteMigrates(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "petshub.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.NotNil(t, b.DB)
	require.NoError(t, b.Migrate(ctx))

	n, err := b.AnonLikes.CountForPet(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DBConfig{Driver: "mysql"})
	require.Error(t, err)
}
