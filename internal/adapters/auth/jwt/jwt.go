package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"petshub/internal/ports/auth"
)

var (
	ErrTokenEmpty     = errors.New("token is empty")
	ErrNotConfigured  = errors.New("jwt secret is required")
	ErrMissingSubject = errors.New("token missing user id")
)

var signingMethod = jwt.SigningMethodHS256

type claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service implementa auth.AuthVerifier y auth.TokenIssuer con HS256.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func New(secret, issuer string, ttl time.Duration) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNotConfigured
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive")
	}
	return &Service{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *Service) Issue(userID, email string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrMissingSubject
	}
	now := s.now()
	c := claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(signingMethod, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

func (s *Service) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	c := &claims{}
	if _, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...); err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	uid := strings.TrimSpace(c.UserID)
	if uid == "" {
		return auth.Claims{}, ErrMissingSubject
	}

	out := auth.Claims{UserID: uid, Email: c.Email}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}
