// Package sqlite implementa los repositorios sobre sqlite local (modernc) o libsql/Turso.
package sqlite

import (
	"database/sql"

	"petshub/internal/domain/likes"
	"petshub/internal/domain/pets"
	"petshub/internal/domain/users"
)

type Store struct {
	db *sql.DB
}

// NewStore asume el esquema ya migrado (ver migrations.Up).
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() users.Repository { return &userRepo{db: s.db} }

func (s *Store) Pets() pets.Repository { return &petRepo{db: s.db} }

func (s *Store) UserLikes() likes.Ledger {
	return &likeLedger{db: s.db, table: "likes", subjectCol: "user_id"}
}

func (s *Store) AnonLikes() likes.Ledger {
	return &likeLedger{db: s.db, table: "anon_likes", subjectCol: "anon_id"}
}
