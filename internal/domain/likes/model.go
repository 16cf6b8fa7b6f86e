package likes

import (
	"time"

	"petshub/internal/domain/identity"
	"petshub/internal/platform/apperr"
)

var (
	ErrAuthRequired  = apperr.New(apperr.CodeUnauthorized, "authentication required or provide X-Anonymous-Id")
	ErrDuplicateLike = apperr.New(apperr.CodeConflict, "pet already liked")
	ErrLikeNotFound  = apperr.New(apperr.CodeNotFound, "like not found")
	ErrInvalidInput  = apperr.New(apperr.CodeValidation, "invalid input")

	// ErrUnknownUser: token válido para un usuario que ya no existe en el store.
	ErrUnknownUser = apperr.New(apperr.CodeUnauthorized, "user no longer exists, sign in again")
)

// Like es una fila de cualquiera de los dos ledgers. Kind dice a cuál pertenece
// y SubjectID es el user id o el anonymous id según corresponda.
type Like struct {
	ID        string
	Kind      identity.Kind
	SubjectID string
	PetID     string
	CreatedAt time.Time
}

// Stats es lo que se adjunta a cada mascota en las lecturas.
type Stats struct {
	LikeCount int
	LikedByMe bool
}
