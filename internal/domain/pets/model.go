package pets

import (
	"time"

	"petshub/internal/platform/apperr"
)

const (
	MaxNameLen = 100

	DefaultPageSize = 12
	MaxPageSize     = 100
)

var (
	ErrNotFound      = apperr.New(apperr.CodeNotFound, "pet not found")
	ErrForbidden     = apperr.New(apperr.CodeForbidden, "you do not have permission to modify this pet")
	ErrInvalidInput  = apperr.New(apperr.CodeValidation, "invalid input")
	ErrOwnerNotFound = apperr.New(apperr.CodeNotFound, "owner not found")
)

// Pet es una mascota del catálogo. Image es una referencia opaca (URL o path) que manda el cliente.
type Pet struct {
	ID          string
	OwnerUserID string

	Name     string
	FunFacts string
	Image    string

	// Enabled controla si aparece en el listado público.
	Enabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasMore     bool `json:"hasMore"`
}

type Page struct {
	Items      []Pet
	Pagination Pagination
}
