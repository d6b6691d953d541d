// This file defines repository methods for self-reported donations. They
// have no cross-entity effects: staff approve or reject them, and the
// public page shows the ten most recent approved entries.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sokakpati/shelter-api/internal/model"
)

// DonationRepo encapsulates all database queries related to donations.
type DonationRepo struct {
	db *sql.DB
}

// NewDonationRepo constructs a DonationRepo with the provided DB handle.
func NewDonationRepo(db *sql.DB) *DonationRepo {
	return &DonationRepo{db: db}
}

const donationColumns = "id, full_name, phone, amount, message, is_anonymous, status, created_at"

// Create inserts a donation in the pending state and populates ID, Status
// and CreatedAt from the stored row.
func (r *DonationRepo) Create(ctx context.Context, d *model.Donation) error {
	const q = "INSERT INTO donations (full_name, phone, amount, message, is_anonymous) VALUES (?,?,?,?,?)"
	res, err := r.db.ExecContext(ctx, q, d.FullName, d.Phone, d.Amount, d.Message, d.IsAnonymous)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT status, created_at FROM donations WHERE id = ?", d.ID).
		Scan(&d.Status, &d.CreatedAt)
}

// ListAll returns every donation newest first, for the dashboard.
func (r *DonationRepo) ListAll(ctx context.Context) ([]*model.Donation, error) {
	return r.list(ctx,
		"SELECT "+donationColumns+" FROM donations ORDER BY created_at DESC, id DESC")
}

// ListApproved returns the newest approved donations up to limit, for the
// public supporters list.
func (r *DonationRepo) ListApproved(ctx context.Context, limit int) ([]*model.Donation, error) {
	return r.list(ctx,
		"SELECT "+donationColumns+" FROM donations WHERE status = 'approved' ORDER BY created_at DESC, id DESC LIMIT ?",
		limit)
}

func (r *DonationRepo) list(ctx context.Context, q string, args ...any) ([]*model.Donation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Donation, 0)
	for rows.Next() {
		d := new(model.Donation)
		if err := rows.Scan(&d.ID, &d.FullName, &d.Phone, &d.Amount,
			&d.Message, &d.IsAnonymous, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus persists a new status and returns the updated donation.
// ErrDonationNotFound is returned when the id does not exist.
func (r *DonationRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Donation, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE donations SET status = ? WHERE id = ?", status, id); err != nil {
		return nil, err
	}
	var d model.Donation
	err := r.db.QueryRowContext(ctx,
		"SELECT "+donationColumns+" FROM donations WHERE id = ?", id).
		Scan(&d.ID, &d.FullName, &d.Phone, &d.Amount, &d.Message,
			&d.IsAnonymous, &d.Status, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Delete removes a donation. ErrDonationNotFound is returned when the id
// does not exist.
func (r *DonationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM donations WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDonationNotFound
	}
	return nil
}
