package memory

import (
	"context"
	"sort"

	"petshub/internal/domain/likes"
	"petshub/internal/domain/pets"
)

// likeLedger es uno de los dos ledgers (rows apunta a userLikes o anonLikes del Store).
type likeLedger struct {
	s    *Store
	rows map[likeKey]likes.Like
	// userSubjects: el sujeto debe existir en users (FK en SQL).
	userSubjects bool
}

// Create hace check-and-insert bajo el lock de escritura: de N altas concurrentes
// del mismo par gana exactamente una.
func (l *likeLedger) Create(_ context.Context, lk likes.Like) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if _, ok := l.s.pets[lk.PetID]; !ok {
		// la mascota se borró entre EnsureExists y el insert (FK en SQL)
		return pets.ErrNotFound
	}
	if l.userSubjects {
		if _, ok := l.s.users[lk.SubjectID]; !ok {
			return likes.ErrUnknownUser
		}
	}
	k := likeKey{subject: lk.SubjectID, pet: lk.PetID}
	if _, exists := l.rows[k]; exists {
		return likes.ErrDuplicateLike
	}
	l.rows[k] = lk
	return nil
}

func (l *likeLedger) Exists(_ context.Context, subjectID, petID string) (bool, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	_, ok := l.rows[likeKey{subject: subjectID, pet: petID}]
	return ok, nil
}

func (l *likeLedger) Delete(_ context.Context, subjectID, petID string) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	k := likeKey{subject: subjectID, pet: petID}
	if _, ok := l.rows[k]; !ok {
		return likes.ErrLikeNotFound
	}
	delete(l.rows, k)
	return nil
}

func (l *likeLedger) ListPetIDs(_ context.Context, subjectID string) ([]string, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	out := make([]string, 0)
	for k := range l.rows {
		if k.subject == subjectID {
			out = append(out, k.pet)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (l *likeLedger) CountForPet(_ context.Context, petID string) (int, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	n := 0
	for k := range l.rows {
		if k.pet == petID {
			n++
		}
	}
	return n, nil
}

func (l *likeLedger) ListSubjectsForPet(_ context.Context, petID string) ([]string, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	out := make([]string, 0)
	for k := range l.rows {
		if k.pet == petID {
			out = append(out, k.subject)
		}
	}
	sort.Strings(out)
	return out, nil
}
