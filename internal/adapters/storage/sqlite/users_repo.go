package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petshub/internal/domain/users"
)

type userRepo struct {
	db *sql.DB
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	const q = `
INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Email, u.Name, u.PasswordHash, toUnix(u.CreatedAt), toUnix(u.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, `SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE id = ?`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, `SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE email = ?`, email)
}

func (r *userRepo) getOne(ctx context.Context, q string, arg string) (users.User, error) {
	var (
		u                users.User
		created, updated int64
	)
	err := r.db.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("select user: %w", err)
	}
	u.CreatedAt = fromUnix(created)
	u.UpdatedAt = fromUnix(updated)
	return u, nil
}
