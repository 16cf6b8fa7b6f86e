package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	// Update y Delete devuelven ErrNotFound si no existe. Delete arrastra los likes de la mascota.
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListByOwner incluye deshabilitadas; más nuevas primero.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	// ListPublic solo habilitadas, más nuevas primero, con el total para paginar.
	ListPublic(ctx context.Context, f ListFilter) ([]Pet, int, error)
}

// OwnerDirectory confirma que el dueño existe (lo implementa users.Service).
type OwnerDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}
