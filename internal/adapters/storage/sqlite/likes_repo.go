package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"petshub/internal/domain/likes"
	"petshub/internal/domain/pets"
)

// likeLedger sirve a las dos tablas; table y subjectCol son constantes de Store, nunca input.
type likeLedger struct {
	db         *sql.DB
	table      string
	subjectCol string
}

func (l *likeLedger) Create(ctx context.Context, lk likes.Like) error {
	q := fmt.Sprintf(`INSERT INTO %s (id, %s, pet_id, created_at) VALUES (?, ?, ?, ?)`, l.table, l.subjectCol)
	_, err := l.db.ExecContext(ctx, q, lk.ID, lk.SubjectID, lk.PetID, toUnix(lk.CreatedAt))
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return likes.ErrDuplicateLike
	case isForeignKeyViolation(err):
		return l.foreignKeyError(ctx, lk.PetID, err)
	default:
		return fmt.Errorf("insert %s: %w", l.table, err)
	}
}

// foreignKeyError decide qué FK falló: SQLite no dice cuál, así que se mira la mascota.
func (l *likeLedger) foreignKeyError(ctx context.Context, petID string, cause error) error {
	var found bool
	if err := l.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM pets WHERE id = ?)`, petID).Scan(&found); err != nil {
		return fmt.Errorf("insert %s: %w", l.table, cause)
	}
	if !found {
		return pets.ErrNotFound
	}
	if l.subjectCol == "user_id" {
		return likes.ErrUnknownUser
	}
	return fmt.Errorf("insert %s: %w", l.table, cause)
}

func (l *likeLedger) Exists(ctx context.Context, subjectID, petID string) (bool, error) {
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ? AND pet_id = ?)`, l.table, l.subjectCol)
	var ok bool
	if err := l.db.QueryRowContext(ctx, q, subjectID, petID).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists %s: %w", l.table, err)
	}
	return ok, nil
}

func (l *likeLedger) Delete(ctx context.Context, subjectID, petID string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND pet_id = ?`, l.table, l.subjectCol)
	res, err := l.db.ExecContext(ctx, q, subjectID, petID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", l.table, err)
	}
	return requireAffected(res, likes.ErrLikeNotFound)
}

func (l *likeLedger) ListPetIDs(ctx context.Context, subjectID string) ([]string, error) {
	q := fmt.Sprintf(`SELECT pet_id FROM %s WHERE %s = ? ORDER BY pet_id`, l.table, l.subjectCol)
	return l.strings(ctx, q, subjectID)
}

func (l *likeLedger) CountForPet(ctx context.Context, petID string) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE pet_id = ?`, l.table)
	var n int
	if err := l.db.QueryRowContext(ctx, q, petID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", l.table, err)
	}
	return n, nil
}

func (l *likeLedger) ListSubjectsForPet(ctx context.Context, petID string) ([]string, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE pet_id = ? ORDER BY %s`, l.subjectCol, l.table, l.subjectCol)
	return l.strings(ctx, q, petID)
}

func (l *likeLedger) strings(ctx context.Context, q string, arg string) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", l.table, err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan %s: %w", l.table, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
