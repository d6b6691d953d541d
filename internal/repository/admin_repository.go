// This file defines repository methods for staff accounts. The delete path
// enforces the last-admin guard inside a transaction so the account set can
// never be emptied, even by two concurrent deletes.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sokakpati/shelter-api/internal/model"
	"github.com/sokakpati/shelter-api/internal/utils"
)

// AdminRepo encapsulates all database queries related to admin accounts.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo constructs an AdminRepo with the provided DB handle.
func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

// Create inserts an admin, hashing the plaintext password with bcrypt.
// ErrUsernameExists is returned on a duplicate username.
func (r *AdminRepo) Create(ctx context.Context, username, email, password string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO admins (username, email, password_hash) VALUES (?,?,?)",
		username, email, hash)
	if err != nil {
		// MySQL duplicate-key error code
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an admin by normalized username. sql.ErrNoRows
// passes through so the login handler can answer uniformly.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (model.Admin, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var a model.Admin
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, created_at FROM admins WHERE username = ? LIMIT 1",
		username).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	return a, err
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	var a model.Admin
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, created_at FROM admins WHERE id = ? LIMIT 1",
		id).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAdminNotFound
	}
	return a, err
}

// List returns all admin accounts ordered by id. Password hashes are never
// selected here; the dashboard only shows usernames and emails.
func (r *AdminRepo) List(ctx context.Context) ([]model.Admin, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, username, email, created_at FROM admins ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Admin, 0)
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes username and email, and rehashes the password when a new
// one is supplied. An empty password leaves the stored hash untouched.
func (r *AdminRepo) Update(ctx context.Context, id uint64, username, email, password string, cost int) (model.Admin, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	var err error
	if password != "" {
		var hash string
		hash, err = utils.HashPassword(password, cost)
		if err != nil {
			return model.Admin{}, err
		}
		_, err = r.db.ExecContext(ctx,
			"UPDATE admins SET username = ?, email = ?, password_hash = ? WHERE id = ?",
			username, email, hash, id)
	} else {
		_, err = r.db.ExecContext(ctx,
			"UPDATE admins SET username = ?, email = ? WHERE id = ?",
			username, email, id)
	}
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return model.Admin{}, ErrUsernameExists
		}
		return model.Admin{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an admin account unless it is the last one. The count and
// the delete run in one transaction so concurrent deletes cannot both pass
// the guard.
func (r *AdminRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var n int
	if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins FOR UPDATE").Scan(&n); err != nil {
		return err
	}
	if n <= 1 {
		err = ErrLastAdmin
		return err
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx, "DELETE FROM admins WHERE id = ?", id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		err = ErrAdminNotFound
		return err
	}
	return nil
}
