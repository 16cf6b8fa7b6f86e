package users

import "context"

type Repository interface {
	// Create devuelve ErrEmailTaken si el email ya existe (índice único).
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	// GetByEmail espera el email ya normalizado (lowercase).
	GetByEmail(ctx context.Context, email string) (User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
