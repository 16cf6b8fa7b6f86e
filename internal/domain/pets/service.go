package pets

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	owners OwnerDirectory
	now    func() time.Time
}

// owners puede ser nil (tests); en ese caso no se valida el dueño.
func NewService(repo Repository, owners OwnerDirectory) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name     string
	FunFacts string
	Image    string
	Enabled  *bool // nil = true
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}

	name := strings.TrimSpace(in.Name)
	funFacts := strings.TrimSpace(in.FunFacts)
	if !validName(name) || funFacts == "" {
		return Pet{}, ErrInvalidInput
	}

	if s.owners != nil {
		ok, err := s.owners.Exists(ctx, ownerUserID)
		if err != nil {
			return Pet{}, err
		}
		if !ok {
			return Pet{}, ErrOwnerNotFound
		}
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}

	now := s.now().UTC()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		FunFacts:    funFacts,
		Image:       strings.TrimSpace(in.Image),
		Enabled:     enabled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type ListPublicInput struct {
	Page   int
	Limit  int
	Search string
}

func (s *Service) ListPublic(ctx context.Context, in ListPublicInput) (Page, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	items, total, err := s.repo.ListPublic(ctx, ListFilter{
		Search: strings.TrimSpace(in.Search),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return Page{}, err
	}
	if items == nil {
		items = []Pet{}
	}

	totalPages := (total + limit - 1) / limit
	return Page{
		Items: items,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			HasMore:     page < totalPages,
		},
	}, nil
}

// UpdateInput: punteros para update parcial, nil = no tocar.
type UpdateInput struct {
	Name     *string
	FunFacts *string
	Image    *string
	Enabled  *bool
}

func (s *Service) Update(ctx context.Context, petID, actorUserID string, in UpdateInput) (Pet, error) {
	p, err := s.getAndAssertOwner(ctx, petID, actorUserID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if !validName(name) {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.FunFacts != nil {
		ff := strings.TrimSpace(*in.FunFacts)
		if ff == "" {
			return Pet{}, ErrInvalidInput
		}
		p.FunFacts = ff
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}
	if in.Enabled != nil {
		p.Enabled = *in.Enabled
	}

	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Toggle invierte Enabled (visibilidad pública). Solo el dueño.
func (s *Service) Toggle(ctx context.Context, petID, actorUserID string) (Pet, error) {
	p, err := s.getAndAssertOwner(ctx, petID, actorUserID)
	if err != nil {
		return Pet{}, err
	}

	p.Enabled = !p.Enabled
	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, petID, actorUserID string) error {
	if _, err := s.getAndAssertOwner(ctx, petID, actorUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petID)
}

func validName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= MaxNameLen
}
