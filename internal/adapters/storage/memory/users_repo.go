package memory

import (
	"context"
	"errors"
	"strings"

	"petshub/internal/domain/users"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, taken := r.s.userEmail[u.Email]; taken {
		return users.ErrEmailTaken
	}
	r.s.users[u.ID] = u
	r.s.userEmail[u.Email] = u.ID
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.userEmail[email]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.s.users[id], nil
}
