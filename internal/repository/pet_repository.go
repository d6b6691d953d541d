// This file defines repository methods for the pet catalog. Public
// endpoints only ever see pets with is_adopted = false; the admin dashboard
// lists everything. The adoption flag itself is written exclusively through
// SetAdopted, which the reconciler calls after adoption form transitions.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sokakpati/shelter-api/internal/model"
)

// PetRepo encapsulates all database queries related to pets.
type PetRepo struct {
	db *sql.DB
}

// NewPetRepo constructs a PetRepo with the provided DB handle.
func NewPetRepo(db *sql.DB) *PetRepo {
	return &PetRepo{db: db}
}

const petColumns = "id, name, type, age, gender, description, image, health, charac, is_adopted, created_at"

func scanPet(row interface{ Scan(...any) error }, p *model.Pet) error {
	return row.Scan(&p.ID, &p.Name, &p.Type, &p.Age, &p.Gender, &p.Description,
		&p.Image, &p.Health, &p.Character, &p.IsAdopted, &p.CreatedAt)
}

// Create inserts a new pet. On success the ID and CreatedAt fields are
// populated from the stored row.
func (r *PetRepo) Create(ctx context.Context, p *model.Pet) error {
	const q = `INSERT INTO pets (name, type, age, gender, description, image, health, charac)
	           VALUES (?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Type, p.Age, p.Gender,
		p.Description, p.Image, p.Health, p.Character)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	// Follow-up SELECT to pick up DB-assigned defaults (created_at, is_adopted).
	return r.db.QueryRowContext(ctx,
		"SELECT is_adopted, created_at FROM pets WHERE id = ?", p.ID).
		Scan(&p.IsAdopted, &p.CreatedAt)
}

// GetByID fetches one pet. It returns ErrPetNotFound when no row exists.
func (r *PetRepo) GetByID(ctx context.Context, id uint64) (*model.Pet, error) {
	var p model.Pet
	err := scanPet(r.db.QueryRowContext(ctx,
		"SELECT "+petColumns+" FROM pets WHERE id = ?", id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListAvailable returns pets that have not been adopted, for the public
// catalog.
func (r *PetRepo) ListAvailable(ctx context.Context) ([]*model.Pet, error) {
	return r.list(ctx, "SELECT "+petColumns+" FROM pets WHERE is_adopted = FALSE ORDER BY id")
}

// ListAll returns every pet regardless of adoption state, for the admin
// dashboard.
func (r *PetRepo) ListAll(ctx context.Context) ([]*model.Pet, error) {
	return r.list(ctx, "SELECT "+petColumns+" FROM pets ORDER BY id")
}

func (r *PetRepo) list(ctx context.Context, q string, args ...any) ([]*model.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Pet, 0)
	for rows.Next() {
		p := new(model.Pet)
		if err := scanPet(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the staff-editable fields of a pet. The adoption flag is
// not touched here; it belongs to the reconciler. ErrPetNotFound is
// returned when the id does not exist.
func (r *PetRepo) Update(ctx context.Context, p *model.Pet) error {
	const q = `UPDATE pets
	           SET name = ?, type = ?, age = ?, gender = ?, description = ?,
	               image = ?, health = ?, charac = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Type, p.Age, p.Gender,
		p.Description, p.Image, p.Health, p.Character, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero for a no-change update; confirm existence.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM pets WHERE id = ?", p.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPetNotFound
			}
			return err
		}
	}
	return scanPet(r.db.QueryRowContext(ctx,
		"SELECT "+petColumns+" FROM pets WHERE id = ?", p.ID), p)
}

// Delete removes a pet. Forms referencing it are left in place; later
// transitions on them will find the reference dangling and skip the flag
// write.
func (r *PetRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM pets WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPetNotFound
	}
	return nil
}

// SetAdopted writes the adoption flag. ErrPetNotFound is returned when the
// pet no longer exists so the reconciler can log and move on.
func (r *PetRepo) SetAdopted(ctx context.Context, id uint64, adopted bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE pets SET is_adopted = ? WHERE id = ?", adopted, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the pet vanished or the flag already holds the target
		// value. The latter is fine (approved -> approved is idempotent),
		// so only report missing rows.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM pets WHERE id = ?", id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPetNotFound
			}
			return err
		}
	}
	return nil
}
