package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petshub/internal/adapters/storage/migrations"
	"petshub/internal/adapters/storage/storagetest"
)

func openTestDB(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "petshub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite))
	return NewStore(db)
}

func TestStore_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Stores {
		s := openTestDB(t)
		return storagetest.Stores{
			Users:     s.Users(),
			Pets:      s.Pets(),
			UserLikes: s.UserLikes(),
			AnonLikes: s.AnonLikes(),
		}
	})
}

func TestIsRemote(t *testing.T) {
	cases := map[string]bool{
		"petshub.db":               false,
		"file:petshub.db?mode=rwc": false,
		"libsql://demo.turso.io":   true,
		"wss://demo.turso.io":      true,
		"https://demo.turso.io":    true,
	}
	for dsn, want := range cases {
		assert.Equal(t, want, IsRemote(dsn), dsn)
	}
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%lun%`, likePattern("LUN"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.Error(t, err)
}
