package likes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petshub/internal/domain/identity"
)

func seed(t *testing.T, l *testLedger, subject string, pets ...string) {
	t.Helper()
	for _, p := range pets {
		require.NoError(t, l.Create(context.Background(), Like{ID: subject + p, SubjectID: subject, PetID: p}))
	}
}

func TestAggregator_CountSumsBothLedgers(t *testing.T) {
	ctx := context.Background()
	users, anon := newTestLedger(), newTestLedger()
	seed(t, users, "u-1", "luna", "milo")
	seed(t, users, "u-2", "luna")
	seed(t, anon, "abc", "luna")

	agg := NewAggregator(users, anon)

	n, err := agg.CountForPet(ctx, "luna")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = agg.CountForPet(ctx, "nobody-likes-me")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAggregator_LikedByViewer(t *testing.T) {
	ctx := context.Background()
	users, anon := newTestLedger(), newTestLedger()
	seed(t, users, "u-1", "luna")
	seed(t, anon, "abc", "milo")
	agg := NewAggregator(users, anon)

	cases := []struct {
		viewer identity.Identity
		pet    string
		want   bool
	}{
		{identity.User("u-1"), "luna", true},
		{identity.User("u-1"), "milo", false},
		{identity.Anonymous("abc"), "milo", true},
		{identity.Anonymous("abc"), "luna", false},
		{identity.Anonymous("u-1"), "luna", false},
		{identity.None, "luna", false},
	}
	for _, tc := range cases {
		got, err := agg.LikedByViewer(ctx, tc.viewer, tc.pet)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "viewer=%s pet=%s", tc.viewer, tc.pet)
	}
}

func TestAggregator_LikedPetIDs(t *testing.T) {
	ctx := context.Background()
	users, anon := newTestLedger(), newTestLedger()
	seed(t, users, "u-1", "milo", "luna")
	agg := NewAggregator(users, anon)

	ids, err := agg.LikedPetIDs(ctx, identity.User("u-1"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"luna", "milo"}, ids)

	ids, err = agg.LikedPetIDs(ctx, identity.None)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestAggregator_Stats(t *testing.T) {
	ctx := context.Background()
	users, anon := newTestLedger(), newTestLedger()
	seed(t, users, "u-1", "luna")
	seed(t, anon, "abc", "luna", "milo")
	agg := NewAggregator(users, anon)

	stats, err := agg.Stats(ctx, identity.Anonymous("abc"), []string{"luna", "milo", "rex", "luna"})
	require.NoError(t, err)

	assert.Equal(t, Stats{LikeCount: 2, LikedByMe: true}, stats["luna"])
	assert.Equal(t, Stats{LikeCount: 1, LikedByMe: true}, stats["milo"])
	assert.Equal(t, Stats{LikeCount: 0, LikedByMe: false}, stats["rex"])
	assert.Len(t, stats, 3)
}

func TestAggregator_ListSubjectsForPet(t *testing.T) {
	ctx := context.Background()
	users, anon := newTestLedger(), newTestLedger()
	seed(t, users, "u-1", "luna")
	seed(t, users, "u-2", "luna")
	seed(t, anon, "abc", "luna")
	agg := NewAggregator(users, anon)

	u, a, err := agg.ListSubjectsForPet(ctx, "luna")
	require.NoError(t, err)
	assert.Equal(t, []string{"u-1", "u-2"}, u)
	assert.Equal(t, []string{"abc"}, a)
}

func TestAggregator_PropagatesStoreErrors(t *testing.T) {
	users, anon := newTestLedger(), newTestLedger()
	anon.err = errors.New("boom")
	agg := NewAggregator(users, anon)

	_, err := agg.CountForPet(context.Background(), "luna")
	assert.Error(t, err)
}
