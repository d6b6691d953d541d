package model

import "time"

// TeamMember is a purely descriptive entry on the "our team" page, a row in
// the `team_members` table. DisplayOrder controls the ordering on the page.
type TeamMember struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Image        string    `json:"image"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
}
