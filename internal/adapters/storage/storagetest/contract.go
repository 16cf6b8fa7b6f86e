// Package storagetest tiene las pruebas de contrato que todo store (memory, sqlite, ...) debe pasar.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petshub/internal/domain/identity"
	"petshub/internal/domain/likes"
	"petshub/internal/domain/pets"
	"petshub/internal/domain/users"
)

type Stores struct {
	Users     users.Repository
	Pets      pets.Repository
	UserLikes likes.Ledger
	AnonLikes likes.Ledger
}

// Run corre todo el contrato; newStores debe devolver stores vacíos e independientes.
func Run(t *testing.T, newStores func(t *testing.T) Stores) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStores(t)) })
	t.Run("pets", func(t *testing.T) { testPets(t, newStores(t)) })
	t.Run("pets_search_unicode", func(t *testing.T) { testPetsSearchUnicode(t, newStores(t)) })
	t.Run("ledger_uniqueness", func(t *testing.T) { testLedgerUniqueness(t, newStores(t)) })
	t.Run("ledger_spaces_independent", func(t *testing.T) { testLedgerSpaces(t, newStores(t)) })
	t.Run("ledger_reads", func(t *testing.T) { testLedgerReads(t, newStores(t)) })
	t.Run("ledger_unknown_user", func(t *testing.T) { testLedgerUnknownUser(t, newStores(t)) })
	t.Run("pet_delete_cascades", func(t *testing.T) { testCascade(t, newStores(t)) })
	t.Run("concurrent_create_single_winner", func(t *testing.T) { testConcurrentCreate(t, newStores(t)) })
}

var base = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func mkUser(t *testing.T, s Stores, email string) users.User {
	t.Helper()
	u := users.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Test",
		PasswordHash: "hash",
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func mkPet(t *testing.T, s Stores, owner, name string, enabled bool, offset time.Duration) pets.Pet {
	t.Helper()
	p := pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: owner,
		Name:        name,
		FunFacts:    "facts about " + name,
		Enabled:     enabled,
		CreatedAt:   base.Add(offset),
		UpdatedAt:   base.Add(offset),
	}
	require.NoError(t, s.Pets.Create(context.Background(), p))
	return p
}

func mkLike(kind identity.Kind, subject, pet string) likes.Like {
	return likes.Like{ID: uuid.NewString(), Kind: kind, SubjectID: subject, PetID: pet, CreatedAt: base}
}

func testUsers(t *testing.T, s Stores) {
	ctx := context.Background()
	u := mkUser(t, s, "ana@example.com")

	got, err := s.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, "hash", got.PasswordHash)

	got, err = s.Users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	dup := u
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, s.Users.Create(ctx, dup), users.ErrEmailTaken)

	_, err = s.Users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, users.ErrNotFound)
	_, err = s.Users.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func testPets(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := mkUser(t, s, "owner@example.com")
	other := mkUser(t, s, "other@example.com")

	luna := mkPet(t, s, owner.ID, "Luna", true, 1*time.Minute)
	lunita := mkPet(t, s, owner.ID, "Lunita", true, 2*time.Minute)
	hidden := mkPet(t, s, owner.ID, "Luna Hidden", false, 3*time.Minute)
	rex := mkPet(t, s, other.ID, "Rex", true, 4*time.Minute)

	got, err := s.Pets.GetByID(ctx, luna.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luna", got.Name)
	assert.True(t, got.CreatedAt.Equal(luna.CreatedAt))

	_, err = s.Pets.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, pets.ErrNotFound)

	mine, err := s.Pets.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, hidden.ID, mine[0].ID, "newest first, disabled included")

	items, total, err := s.Pets.ListPublic(ctx, pets.ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, rex.ID, items[0].ID)
	assert.Equal(t, lunita.ID, items[1].ID)

	items, total, err = s.Pets.ListPublic(ctx, pets.ListFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, luna.ID, items[0].ID)

	items, total, err = s.Pets.ListPublic(ctx, pets.ListFilter{Search: "lun", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)

	luna.Name = "Luna II"
	luna.Enabled = false
	luna.Image = "https://img/luna.png"
	luna.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, s.Pets.Update(ctx, luna))
	got, err = s.Pets.GetByID(ctx, luna.ID)
	require.NoError(t, err)
	assert.Equal(t, "Luna II", got.Name)
	assert.False(t, got.Enabled)
	assert.Equal(t, "https://img/luna.png", got.Image)

	ghost := luna
	ghost.ID = uuid.NewString()
	assert.ErrorIs(t, s.Pets.Update(ctx, ghost), pets.ErrNotFound)
	assert.ErrorIs(t, s.Pets.Delete(ctx, ghost.ID), pets.ErrNotFound)
}

func testPetsSearchUnicode(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := mkUser(t, s, "owner@example.com")
	nandu := mkPet(t, s, owner.ID, "Ñandú", true, 0)
	mkPet(t, s, owner.ID, "Rex", true, time.Minute)

	for _, search := range []string{"ñandú", "ÑANDÚ", "andú"} {
		items, total, err := s.Pets.ListPublic(ctx, pets.ListFilter{Search: search, Limit: 10})
		require.NoError(t, err)
		require.Equal(t, 1, total, "search %q", search)
		require.Len(t, items, 1)
		assert.Equal(t, nandu.ID, items[0].ID)
	}

	// el nombre nuevo también se busca
	nandu.Name = "Águila"
	nandu.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, s.Pets.Update(ctx, nandu))
	_, total, err := s.Pets.ListPublic(ctx, pets.ListFilter{Search: "águila", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	_, total, err = s.Pets.ListPublic(ctx, pets.ListFilter{Search: "ñandú", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func testLedgerUniqueness(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := mkUser(t, s, "owner@example.com")
	p := mkPet(t, s, owner.ID, "Luna", true, 0)

	require.NoError(t, s.AnonLikes.Create(ctx, mkLike(identity.KindAnonymous, "abc", p.ID)))
	assert.ErrorIs(t, s.AnonLikes.Create(ctx, mkLike(identity.KindAnonymous, "abc", p.ID)), likes.ErrDuplicateLike)

	require.NoError(t, s.UserLikes.Create(ctx, mkLike(identity.KindUser, owner.ID, p.ID)))
	assert.ErrorIs(t, s.UserLikes.Create(ctx, mkLike(identity.KindUser, owner.ID, p.ID)), likes.ErrDuplicateLike)

	require.NoError(t, s.AnonLikes.Delete(ctx, "abc", p.ID))
	assert.ErrorIs(t, s.AnonLikes.Delete(ctx, "abc", p.ID), likes.ErrLikeNotFound)

	// el slot quedó libre
	require.NoError(t, s.AnonLikes.Create(ctx, mkLike(identity.KindAnonymous, "abc", p.ID)))
}

func testLedgerSpaces(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := mkUser(t, s, "owner@example.com")
	p := mkPet(t, s, owner.ID, "Luna", true, 0)

	// mismo string como user id y como anonymous id: no colisionan
	require.NoError(t, s.UserLikes.Create(ctx, mkLike(identity.KindUser, owner.ID, p.ID)))
	require.NoError(t, s.AnonLikes.Create(ctx, mkLike(identity.KindAnonymous, owner.ID, p.ID)))

	ok, err := s.AnonLikes.Exists(ctx, owner.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.UserLikes.Delete(ctx, owner.ID, p.ID))
	ok, err = s.AnonLikes.Exists(ctx, owner.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ok, "deleting from users ledger must not touch anonymous ledger")
}

func testLedgerReads(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := mkUser(t, s, "owner@example.com")
	fan := mkUser(t, s, "fan@example.com")
	luna := mkPet(t, s, owner.ID, "Luna", true, 0)
	milo := mkPet(t, s, owner.ID, "Milo", false, time.Minute)

	require.NoError(t, s.UserLikes.Create(ctx, mkLike(identity.KindUser, owner.ID, luna.ID)))
	require.NoError(t, s.UserLikes.Create(ctx, mkLike(identity.KindUser, fan.ID, luna.ID)))
	require.NoError(t, s.UserLikes.Create(ctx, mkLike(identity.KindUser, fan.ID, milo.ID)))
	require.NoError(t, s.AnonLikes.Create(ctx, mkLike(identity.KindAnonymous, "abc", luna.ID)))

	n, err := s.UserLikes.CountForPet(ctx, luna.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = s.AnonLikes.CountForPet(ctx, luna.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.AnonLikes.CountForPet(ctx, milo.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ids, err := s.UserLikes.ListPetIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{luna.ID, milo.ID}, ids)

	ids, err = s.AnonLikes.ListPetIDs(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)

	subjects, err := s.UserLikes.ListSubjectsForPet(ctx, luna.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{owner.ID, fan.ID}, subjects)

	ok, err := s.UserLikes.Exists(ctx, owner.ID, milo.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testLedgerUnknownUser(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := mkUser(t, s, "owner@example.com")
	p := mkPet(t, s, owner.ID, "Luna", true, 0)

	// token vigente de un usuario que ya no está: la mascota existe, el usuario no
	err := s.UserLikes.Create(ctx, mkLike(identity.KindUser, "ghost-user", p.ID))
	assert.ErrorIs(t, err, likes.ErrUnknownUser)
	assert.NotErrorIs(t, err, pets.ErrNotFound)

	err = s.UserLikes.Create(ctx, mkLike(identity.KindUser, "ghost-user", uuid.NewString()))
	assert.ErrorIs(t, err, pets.ErrNotFound)

	n, err := s.UserLikes.CountForPet(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func testCascade(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := mkUser(t, s, "owner@example.com")
	luna := mkPet(t, s, owner.ID, "Luna", true, 0)
	milo := mkPet(t, s, owner.ID, "Milo", true, time.Minute)

	require.NoError(t, s.UserLikes.Create(ctx, mkLike(identity.KindUser, owner.ID, luna.ID)))
	require.NoError(t, s.AnonLikes.Create(ctx, mkLike(identity.KindAnonymous, "abc", luna.ID)))
	require.NoError(t, s.AnonLikes.Create(ctx, mkLike(identity.KindAnonymous, "abc", milo.ID)))

	require.NoError(t, s.Pets.Delete(ctx, luna.ID))

	n, err := s.UserLikes.CountForPet(ctx, luna.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	n, err = s.AnonLikes.CountForPet(ctx, luna.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ids, err := s.AnonLikes.ListPetIDs(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []string{milo.ID}, ids)

	// like a una mascota inexistente: el store lo rechaza
	err = s.AnonLikes.Create(ctx, mkLike(identity.KindAnonymous, "abc", luna.ID))
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func testConcurrentCreate(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := mkUser(t, s, "owner@example.com")
	p := mkPet(t, s, owner.ID, "Luna", true, 0)

	const n = 12
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		dups int
		errs []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.AnonLikes.Create(ctx, mkLike(identity.KindAnonymous, "abc", p.ID))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, likes.ErrDuplicateLike):
				dups++
			default:
				errs = append(errs, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, errs, fmt.Sprintf("unexpected errors: %v", errs))
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dups)

	count, err := s.AnonLikes.CountForPet(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
