package domain

import "time"

// User carries login credentials for the administration surface. The
// password is stored as a PBKDF2 hash next to its salt, never in plain
// text.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
