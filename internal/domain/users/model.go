package users

import (
	"time"

	"petshub/internal/platform/apperr"
)

var (
	ErrEmailTaken         = apperr.New(apperr.CodeConflict, "email already registered")
	ErrInvalidCredentials = apperr.New(apperr.CodeUnauthorized, "invalid email or password")
	ErrNotFound           = apperr.New(apperr.CodeNotFound, "user not found")
	ErrInvalidInput       = apperr.New(apperr.CodeValidation, "invalid input")
)

const (
	MinPasswordLen = 6
	MinNameLen     = 2
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session es lo que devuelven register/login.
type Session struct {
	User  User
	Token string
}
