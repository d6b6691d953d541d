package model

import "time"

// Admin represents a staff account able to authenticate against the back
// office, a row in the `admins` table. Only the bcrypt hash of the password
// is stored. The service refuses to delete the final remaining admin so the
// dashboard can never lock everyone out.
type Admin struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RefreshToken models an entry in the `refresh_tokens` table. Each token
// belongs to an admin; only the SHA-256 hash of the raw value is stored.
//
// Fields:
//
//	ID        – primary key identifier.
//	AdminID   – owner of the token.
//	TokenHash – SHA-256 hex digest of the raw token.
//	ExpiresAt – expiration timestamp.
//	RevokedAt – when the token was revoked (nil while active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64
	AdminID   uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
