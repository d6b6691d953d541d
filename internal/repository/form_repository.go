// This file defines repository methods for public form submissions. All
// three kinds (volunteer, adoption, contact) share the `forms` table; the
// kind-specific answers live in a JSON payload column that is stored and
// returned verbatim. Adoption forms additionally carry a pet_id reference.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sokakpati/shelter-api/internal/model"
)

// FormWithPet is a form joined with the name and type of its referenced
// pet, used by the dashboard listings. The pet fields are nil for
// non-adoption forms and for forms whose pet has been deleted.
type FormWithPet struct {
	model.Form
	PetName *string `json:"petName,omitempty"`
	PetType *string `json:"petType,omitempty"`
}

// FormRepo encapsulates all database queries related to form submissions.
type FormRepo struct {
	db *sql.DB
}

// NewFormRepo constructs a FormRepo with the provided DB handle.
func NewFormRepo(db *sql.DB) *FormRepo {
	return &FormRepo{db: db}
}

// Create inserts a new submission in the pending state and populates the
// ID, Status and CreatedAt fields from the stored row.
func (r *FormRepo) Create(ctx context.Context, f *model.Form) error {
	const q = "INSERT INTO forms (kind, payload, pet_id) VALUES (?,?,?)"
	var petID any
	if f.PetID != nil {
		petID = *f.PetID
	}
	res, err := r.db.ExecContext(ctx, q, f.Kind, []byte(f.Payload), petID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT status, created_at FROM forms WHERE id = ?", f.ID).
		Scan(&f.Status, &f.CreatedAt)
}

// GetByID fetches one form. ErrFormNotFound is returned when no row exists.
func (r *FormRepo) GetByID(ctx context.Context, id uint64) (*model.Form, error) {
	const q = "SELECT id, kind, status, payload, pet_id, created_at FROM forms WHERE id = ?"
	var f model.Form
	var payload []byte
	var petID sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&f.ID, &f.Kind, &f.Status, &payload, &petID, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	f.Payload = json.RawMessage(payload)
	if petID.Valid {
		v := uint64(petID.Int64)
		f.PetID = &v
	}
	return &f, nil
}

// UpdateStatus persists a new status on a form. The caller is responsible
// for running the reconciler afterwards when the form is an adoption form.
func (r *FormRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE forms SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM forms WHERE id = ?", id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrFormNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a form. ErrFormNotFound is returned when the id does not
// exist. Compensating reconciliation for approved adoption forms happens in
// the handler, which loads the form before deleting it.
func (r *FormRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM forms WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFormNotFound
	}
	return nil
}

// ListAdoption returns all adoption forms newest first, joined with the
// referenced pet's name and type for the dashboard.
func (r *FormRepo) ListAdoption(ctx context.Context) ([]*FormWithPet, error) {
	const q = `SELECT f.id, f.kind, f.status, f.payload, f.pet_id, f.created_at, p.name, p.type
	           FROM forms f
	           LEFT JOIN pets p ON p.id = f.pet_id
	           WHERE f.kind = 'adoption'
	           ORDER BY f.created_at DESC, f.id DESC`
	return r.listJoined(ctx, q)
}

// List returns forms of any kind newest first, optionally filtered by kind
// and/or status, joined with the referenced pet's name and type.
func (r *FormRepo) List(ctx context.Context, kind, status string) ([]*FormWithPet, error) {
	q := `SELECT f.id, f.kind, f.status, f.payload, f.pet_id, f.created_at, p.name, p.type
	      FROM forms f
	      LEFT JOIN pets p ON p.id = f.pet_id`
	var conds []string
	var args []any
	if kind != "" {
		conds = append(conds, "f.kind = ?")
		args = append(args, kind)
	}
	if status != "" {
		conds = append(conds, "f.status = ?")
		args = append(args, status)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY f.created_at DESC, f.id DESC"
	return r.listJoined(ctx, q, args...)
}

func (r *FormRepo) listJoined(ctx context.Context, q string, args ...any) ([]*FormWithPet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*FormWithPet, 0)
	for rows.Next() {
		f := new(FormWithPet)
		var payload []byte
		var petID sql.NullInt64
		var petName, petType sql.NullString
		if err := rows.Scan(&f.ID, &f.Kind, &f.Status, &payload, &petID,
			&f.CreatedAt, &petName, &petType); err != nil {
			return nil, err
		}
		f.Payload = json.RawMessage(payload)
		if petID.Valid {
			v := uint64(petID.Int64)
			f.PetID = &v
		}
		if petName.Valid {
			f.PetName = &petName.String
		}
		if petType.Valid {
			f.PetType = &petType.String
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
