package likes

import (
	"context"
	"fmt"

	"petshub/internal/domain/identity"
)

// Aggregator combina ambos ledgers en lectura. Nada se cachea: cada conteo
// refleja el estado de los stores al momento de la consulta.
type Aggregator struct {
	users Ledger
	anon  Ledger
}

func NewAggregator(users, anon Ledger) *Aggregator {
	return &Aggregator{users: users, anon: anon}
}

func (a *Aggregator) CountForPet(ctx context.Context, petID string) (int, error) {
	u, err := a.users.CountForPet(ctx, petID)
	if err != nil {
		return 0, fmt.Errorf("count user likes: %w", err)
	}
	n, err := a.anon.CountForPet(ctx, petID)
	if err != nil {
		return 0, fmt.Errorf("count anonymous likes: %w", err)
	}
	return u + n, nil
}

func (a *Aggregator) LikedByViewer(ctx context.Context, viewer identity.Identity, petID string) (bool, error) {
	ledger := a.ledgerFor(viewer)
	if ledger == nil {
		return false, nil
	}
	return ledger.Exists(ctx, viewer.ID, petID)
}

func (a *Aggregator) LikedPetIDs(ctx context.Context, viewer identity.Identity) ([]string, error) {
	ledger := a.ledgerFor(viewer)
	if ledger == nil {
		return []string{}, nil
	}
	ids, err := ledger.ListPetIDs(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Stats calcula likeCount y likedByMe para una página de mascotas.
func (a *Aggregator) Stats(ctx context.Context, viewer identity.Identity, petIDs []string) (map[string]Stats, error) {
	out := make(map[string]Stats, len(petIDs))
	if len(petIDs) == 0 {
		return out, nil
	}

	liked := map[string]struct{}{}
	if ledger := a.ledgerFor(viewer); ledger != nil {
		ids, err := ledger.ListPetIDs(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			liked[id] = struct{}{}
		}
	}

	for _, petID := range petIDs {
		if _, done := out[petID]; done {
			continue
		}
		n, err := a.CountForPet(ctx, petID)
		if err != nil {
			return nil, err
		}
		_, mine := liked[petID]
		out[petID] = Stats{LikeCount: n, LikedByMe: mine}
	}
	return out, nil
}

// ListSubjectsForPet devuelve quién dio like, separado por ledger. Solo para uso interno.
func (a *Aggregator) ListSubjectsForPet(ctx context.Context, petID string) (users, anonymous []string, err error) {
	users, err = a.users.ListSubjectsForPet(ctx, petID)
	if err != nil {
		return nil, nil, err
	}
	anonymous, err = a.anon.ListSubjectsForPet(ctx, petID)
	if err != nil {
		return nil, nil, err
	}
	return users, anonymous, nil
}

func (a *Aggregator) ledgerFor(id identity.Identity) Ledger {
	switch id.Kind {
	case identity.KindUser:
		return a.users
	case identity.KindAnonymous:
		return a.anon
	default:
		return nil
	}
}
