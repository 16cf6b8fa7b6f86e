package postgres

import (
	"database/sql"

	"petshub/internal/domain/likes"
	"petshub/internal/domain/pets"
	"petshub/internal/domain/users"
)

// Store agrupa los repos sobre un mismo pool.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() users.Repository { return NewUsersRepo(s.db) }

func (s *Store) Pets() pets.Repository { return NewPetsRepo(s.db) }

func (s *Store) UserLikes() likes.Ledger { return NewUserLikesRepo(s.db) }

func (s *Store) AnonLikes() likes.Ledger { return NewAnonLikesRepo(s.db) }
