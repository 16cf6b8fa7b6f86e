package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petshub/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `id, owner_user_id, name, fun_facts, image, enabled, created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.FunFacts,
		toNullString(p.Image),
		p.Enabled,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return pets.ErrOwnerNotFound
		}
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

// Update no toca owner_user_id: el dueño no cambia.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			fun_facts = $3,
			image = $4,
			enabled = $5,
			updated_at = $6
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.FunFacts,
		toNullString(p.Image),
		p.Enabled,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	return requireAffected(res, pets.ErrNotFound)
}

// Delete: likes y anon_likes caen por ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	return requireAffected(res, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("select pet: %w", err)
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, id ASC
	`, ownerUserID)
}

func (r *PetsRepo) ListPublic(ctx context.Context, f pets.ListFilter) ([]pets.Pet, int, error) {
	where := `enabled`
	args := []any{}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		where += fmt.Sprintf(` AND name ILIKE $%d ESCAPE '\'`, len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pets WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pets: %w", err)
	}

	q := `SELECT ` + petColumns + ` FROM pets WHERE ` + where + ` ORDER BY created_at DESC, id ASC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	args = append(args, f.Offset)
	q += fmt.Sprintf(` OFFSET $%d`, len(args))

	items, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(sc rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var image sql.NullString
	if err := sc.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.FunFacts,
		&image,
		&p.Enabled,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Image = image.String
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}
