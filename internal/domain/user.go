package domain

import "time"

// User represents a registered account. The first user to register
// becomes the admin; the flag is never reassigned afterwards.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}
