package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petshub/internal/domain/pets"
)

type petRepo struct {
	db *sql.DB
}

const petColumns = `id, owner_user_id, name, fun_facts, image, enabled, created_at, updated_at`

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	q := `INSERT INTO pets (` + petColumns + `, name_search) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.OwnerUserID, p.Name, p.FunFacts, nullString(p.Image), p.Enabled,
		toUnix(p.CreatedAt), toUnix(p.UpdatedAt), searchKey(p.Name),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return pets.ErrOwnerNotFound
		}
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	const q = `
UPDATE pets SET name = ?, name_search = ?, fun_facts = ?, image = ?, enabled = ?, updated_at = ?
WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.Name, searchKey(p.Name), p.FunFacts, nullString(p.Image), p.Enabled, toUnix(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	return requireAffected(res, pets.ErrNotFound)
}

// Delete: los likes de ambos ledgers caen por ON DELETE CASCADE.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	return requireAffected(res, pets.ErrNotFound)
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ?`, id)
	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("select pet: %w", err)
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	q := `SELECT ` + petColumns + ` FROM pets WHERE owner_user_id = ? ORDER BY created_at DESC, id ASC`
	return r.query(ctx, q, ownerUserID)
}

func (r *petRepo) ListPublic(ctx context.Context, f pets.ListFilter) ([]pets.Pet, int, error) {
	where := `enabled = 1`
	args := []any{}
	if s := strings.TrimSpace(f.Search); s != "" {
		where += ` AND name_search LIKE ? ESCAPE '\'`
		args = append(args, likePattern(s))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pets WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pets: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}
	q := `SELECT ` + petColumns + ` FROM pets WHERE ` + where + ` ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`
	items, err := r.query(ctx, q, append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *petRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select pets: %w", err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(sc scanner) (pets.Pet, error) {
	var (
		p                pets.Pet
		image            sql.NullString
		created, updated int64
	)
	if err := sc.Scan(&p.ID, &p.OwnerUserID, &p.Name, &p.FunFacts, &image, &p.Enabled, &created, &updated); err != nil {
		return pets.Pet{}, err
	}
	p.Image = image.String
	p.CreatedAt = fromUnix(created)
	p.UpdatedAt = fromUnix(updated)
	return p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
