package likes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"petshub/internal/domain/identity"
)

// PetChecker es lo único que likes necesita de pets.
// Se usa una interfaz para evitar ciclos de imports (pets decora con likes).
type PetChecker interface {
	EnsureExists(ctx context.Context, petID string) error
}

// Recorder recibe el resultado de cada like/unlike (métricas).
type Recorder interface {
	Observe(kind, op, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, string, string) {}

type Service struct {
	users Ledger
	anon  Ledger
	pets  PetChecker
	agg   *Aggregator
	rec   Recorder
	now   func() time.Time
}

func NewService(users, anon Ledger, pets PetChecker, rec Recorder) *Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{
		users: users,
		anon:  anon,
		pets:  pets,
		agg:   NewAggregator(users, anon),
		rec:   rec,
		now:   time.Now,
	}
}

// Like: identidad -> la mascota existe -> insert en el ledger de esa identidad.
// Los duplicados los detecta el índice único del store (también bajo concurrencia).
func (s *Service) Like(ctx context.Context, who identity.Identity, petID string) (Like, error) {
	petID = strings.TrimSpace(petID)

	ledger := s.agg.ledgerFor(who)
	if ledger == nil {
		s.rec.Observe(string(who.Kind), "like", "auth_required")
		return Like{}, ErrAuthRequired
	}
	if petID == "" {
		return Like{}, ErrInvalidInput
	}

	if err := s.pets.EnsureExists(ctx, petID); err != nil {
		s.rec.Observe(string(who.Kind), "like", "pet_not_found")
		return Like{}, err
	}

	l := Like{
		ID:        uuid.NewString(),
		Kind:      who.Kind,
		SubjectID: who.ID,
		PetID:     petID,
		CreatedAt: s.now().UTC(),
	}
	if err := ledger.Create(ctx, l); err != nil {
		s.rec.Observe(string(who.Kind), "like", outcomeOf(err))
		return Like{}, err
	}

	s.rec.Observe(string(who.Kind), "like", "created")
	return l, nil
}

// Unlike no revisa la mascota: si no hay like (o la mascota no existe) es ErrLikeNotFound.
func (s *Service) Unlike(ctx context.Context, who identity.Identity, petID string) error {
	petID = strings.TrimSpace(petID)

	ledger := s.agg.ledgerFor(who)
	if ledger == nil {
		s.rec.Observe(string(who.Kind), "unlike", "auth_required")
		return ErrAuthRequired
	}
	if petID == "" {
		return ErrInvalidInput
	}

	if err := ledger.Delete(ctx, who.ID, petID); err != nil {
		s.rec.Observe(string(who.Kind), "unlike", outcomeOf(err))
		return err
	}

	s.rec.Observe(string(who.Kind), "unlike", "removed")
	return nil
}

func (s *Service) LikedPetIDs(ctx context.Context, who identity.Identity) ([]string, error) {
	return s.agg.LikedPetIDs(ctx, who)
}

func (s *Service) CountForPet(ctx context.Context, petID string) (int, error) {
	return s.agg.CountForPet(ctx, petID)
}

func (s *Service) LikedByViewer(ctx context.Context, who identity.Identity, petID string) (bool, error) {
	return s.agg.LikedByViewer(ctx, who, petID)
}

func (s *Service) Stats(ctx context.Context, who identity.Identity, petIDs []string) (map[string]Stats, error) {
	return s.agg.Stats(ctx, who, petIDs)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateLike):
		return "duplicate"
	case errors.Is(err, ErrLikeNotFound):
		return "not_found"
	case errors.Is(err, ErrUnknownUser):
		return "unknown_user"
	default:
		return "error"
	}
}
