package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"petshub/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) Create(_ context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	if _, ok := r.s.users[p.OwnerUserID]; !ok {
		return pets.ErrOwnerNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) Update(_ context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[id]; !exists {
		return pets.ErrNotFound
	}
	delete(r.s.pets, id)
	r.s.deletePetLikes(id)
	return nil
}

func (r *petRepo) GetByID(_ context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(_ context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *petRepo) ListPublic(_ context.Context, f pets.ListFilter) ([]pets.Pet, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(f.Search))
	matched := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if !pets.IsPublic(p) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		matched = append(matched, p)
	}
	sortNewestFirst(matched)

	total := len(matched)
	if f.Offset >= total {
		return []pets.Pet{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < total {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total, nil
}

func sortNewestFirst(items []pets.Pet) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
