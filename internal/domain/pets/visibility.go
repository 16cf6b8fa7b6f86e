package pets

import "context"

// IsPublic: solo las habilitadas aparecen en el listado/búsqueda pública.
// No restringe likes ni la lectura por ID.
func IsPublic(p Pet) bool {
	return p.Enabled
}

// EnsureExists es el chequeo que usa likes antes de escribir en un ledger.
// Una mascota deshabilitada sigue existiendo.
func (s *Service) EnsureExists(ctx context.Context, petID string) error {
	_, err := s.repo.GetByID(ctx, petID)
	return err
}
