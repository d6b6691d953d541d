package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sokakpati/shelter-api/internal/model"
)

// TeamRepo encapsulates all database queries related to team members shown
// on the public "our team" page.
type TeamRepo struct {
	db *sql.DB
}

// NewTeamRepo constructs a TeamRepo with the provided DB handle.
func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

const teamColumns = "id, name, role, image, description, display_order, created_at"

func scanTeamMember(row interface{ Scan(...any) error }, m *model.TeamMember) error {
	return row.Scan(&m.ID, &m.Name, &m.Role, &m.Image, &m.Description,
		&m.DisplayOrder, &m.CreatedAt)
}

// List returns all team members ordered for display.
func (r *TeamRepo) List(ctx context.Context) ([]*model.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+teamColumns+" FROM team_members ORDER BY display_order, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.TeamMember, 0)
	for rows.Next() {
		m := new(model.TeamMember)
		if err := scanTeamMember(rows, m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a team member and populates ID and CreatedAt.
func (r *TeamRepo) Create(ctx context.Context, m *model.TeamMember) error {
	const q = "INSERT INTO team_members (name, role, image, description, display_order) VALUES (?,?,?,?,?)"
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Role, m.Image, m.Description, m.DisplayOrder)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM team_members WHERE id = ?", m.ID).Scan(&m.CreatedAt)
}

// Update replaces all editable fields of a team member and returns the
// stored row. ErrTeamMemberNotFound is returned when the id does not exist.
func (r *TeamRepo) Update(ctx context.Context, m *model.TeamMember) error {
	const q = `UPDATE team_members
	           SET name = ?, role = ?, image = ?, description = ?, display_order = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, m.Name, m.Role, m.Image,
		m.Description, m.DisplayOrder, m.ID); err != nil {
		return err
	}
	err := scanTeamMember(r.db.QueryRowContext(ctx,
		"SELECT "+teamColumns+" FROM team_members WHERE id = ?", m.ID), m)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTeamMemberNotFound
	}
	return err
}

// Delete removes a team member. ErrTeamMemberNotFound is returned when the
// id does not exist.
func (r *TeamRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM team_members WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTeamMemberNotFound
	}
	return nil
}
