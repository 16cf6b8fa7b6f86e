package likes

import "context"

// Ledger guarda likes de un solo tipo de identidad. Hay dos instancias (users y anonymous)
// que no comparten almacenamiento ni unicidad; el índice único de (subject, pet) del store
// es la fuente de verdad contra duplicados.
type Ledger interface {
	// Create devuelve ErrDuplicateLike si (SubjectID, PetID) ya existe, pets.ErrNotFound si la
	// mascota no existe y, en el ledger de usuarios, ErrUnknownUser si el usuario no existe.
	Create(ctx context.Context, l Like) error
	Exists(ctx context.Context, subjectID, petID string) (bool, error)
	// Delete devuelve ErrLikeNotFound si no había fila.
	Delete(ctx context.Context, subjectID, petID string) error
	ListPetIDs(ctx context.Context, subjectID string) ([]string, error)
	CountForPet(ctx context.Context, petID string) (int, error)
	// Uso interno (auditoría); nunca se expone por HTTP.
	ListSubjectsForPet(ctx context.Context, petID string) ([]string, error)
}
