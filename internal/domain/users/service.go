package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"petshub/internal/platform/validate"
	"petshub/internal/ports/auth"
)

type Service struct {
	repo   Repository
	hasher PasswordHasher
	tokens auth.TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, hasher PasswordHasher, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if !validEmail(email) || utf8.RuneCountInString(in.Password) < MinPasswordLen || utf8.RuneCountInString(name) < MinNameLen {
		return Session{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// el índice único cubre la carrera entre el GetByEmail y el insert
	if err := s.repo.Create(ctx, u); err != nil {
		return Session{}, err
	}

	return s.session(u)
}

// Login responde lo mismo para email inexistente y password incorrecto.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(u)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Exists implementa pets.OwnerDirectory.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) session(u User) (Session, error) {
	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{User: u, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail usa la misma regla que el body del handler (tag email de validator).
func validEmail(email string) bool {
	return validate.Var("email", email, "required,email") == nil
}
