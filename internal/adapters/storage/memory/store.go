package memory

import (
	"sync"

	"petshub/internal/domain/likes"
	"petshub/internal/domain/pets"
	"petshub/internal/domain/users"
)

type likeKey struct {
	subject string
	pet     string
}

// Store agrupa todas las tablas en memoria bajo un solo lock, así el borrado de una
// mascota arrastra sus likes de forma atómica (como el ON DELETE CASCADE en SQL).
type Store struct {
	mu sync.RWMutex

	users     map[string]users.User
	userEmail map[string]string

	pets map[string]pets.Pet

	userLikes map[likeKey]likes.Like
	anonLikes map[likeKey]likes.Like
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]users.User),
		userEmail: make(map[string]string),
		pets:      make(map[string]pets.Pet),
		userLikes: make(map[likeKey]likes.Like),
		anonLikes: make(map[likeKey]likes.Like),
	}
}

func (s *Store) Users() users.Repository { return &userRepo{s: s} }

func (s *Store) Pets() pets.Repository { return &petRepo{s: s} }

func (s *Store) UserLikes() likes.Ledger { return &likeLedger{s: s, rows: s.userLikes, userSubjects: true} }

func (s *Store) AnonLikes() likes.Ledger { return &likeLedger{s: s, rows: s.anonLikes} }

// deletePetLikes asume s.mu tomado en escritura.
func (s *Store) deletePetLikes(petID string) {
	for k := range s.userLikes {
		if k.pet == petID {
			delete(s.userLikes, k)
		}
	}
	for k := range s.anonLikes {
		if k.pet == petID {
			delete(s.anonLikes, k)
		}
	}
}
