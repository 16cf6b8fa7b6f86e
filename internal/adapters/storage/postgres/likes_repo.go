package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"petshub/internal/domain/likes"
	"petshub/internal/domain/pets"
)

// LikesRepo es un ledger: una tabla y su columna de sujeto (user_id o anon_id).
type LikesRepo struct {
	db         *sql.DB
	table      string
	subjectCol string
}

func NewUserLikesRepo(db *sql.DB) *LikesRepo {
	return &LikesRepo{db: db, table: "likes", subjectCol: "user_id"}
}

func NewAnonLikesRepo(db *sql.DB) *LikesRepo {
	return &LikesRepo{db: db, table: "anon_likes", subjectCol: "anon_id"}
}

func (r *LikesRepo) Create(ctx context.Context, l likes.Like) error {
	q := fmt.Sprintf(`INSERT INTO %s (id, %s, pet_id, created_at) VALUES ($1,$2,$3,$4)`, r.table, r.subjectCol)
	_, err := r.db.ExecContext(ctx, q, l.ID, l.SubjectID, l.PetID, l.CreatedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return likes.ErrDuplicateLike
	case isForeignKeyViolation(err):
		if constraintName(err) == r.table+"_"+r.subjectCol+"_fkey" {
			return likes.ErrUnknownUser
		}
		return pets.ErrNotFound
	default:
		return fmt.Errorf("insert %s: %w", r.table, err)
	}
}

func (r *LikesRepo) Exists(ctx context.Context, subjectID, petID string) (bool, error) {
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND pet_id = $2)`, r.table, r.subjectCol)
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, subjectID, petID).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists %s: %w", r.table, err)
	}
	return ok, nil
}

func (r *LikesRepo) Delete(ctx context.Context, subjectID, petID string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND pet_id = $2`, r.table, r.subjectCol)
	res, err := r.db.ExecContext(ctx, q, subjectID, petID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	return requireAffected(res, likes.ErrLikeNotFound)
}

func (r *LikesRepo) ListPetIDs(ctx context.Context, subjectID string) ([]string, error) {
	q := fmt.Sprintf(`SELECT pet_id FROM %s WHERE %s = $1 ORDER BY pet_id`, r.table, r.subjectCol)
	return r.strings(ctx, q, subjectID)
}

func (r *LikesRepo) CountForPet(ctx context.Context, petID string) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE pet_id = $1`, r.table)
	var n int
	if err := r.db.QueryRowContext(ctx, q, petID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}
	return n, nil
}

func (r *LikesRepo) ListSubjectsForPet(ctx context.Context, petID string) ([]string, error) {
	q := fmt.Sprintf(`SELECT %[1]s FROM %[2]s WHERE pet_id = $1 ORDER BY %[1]s`, r.subjectCol, r.table)
	return r.strings(ctx, q, petID)
}

func (r *LikesRepo) strings(ctx context.Context, q, arg string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", r.table, err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
