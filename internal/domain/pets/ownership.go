package pets

import (
	"context"
	"strings"
)

// AssertOwner solo aplica a update/toggle/delete. Dar like a la propia mascota está permitido.
func AssertOwner(p Pet, actorUserID string) error {
	actor := strings.TrimSpace(actorUserID)
	if actor == "" || p.OwnerUserID != actor {
		return ErrForbidden
	}
	return nil
}

// getAndAssertOwner: 404 si no existe, 403 si no es el dueño (en ese orden).
func (s *Service) getAndAssertOwner(ctx context.Context, petID, actorUserID string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if err := AssertOwner(p, actorUserID); err != nil {
		return Pet{}, err
	}
	return p, nil
}
