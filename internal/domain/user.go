package domain

import "time"

// User is a login principal. Accounts are provisioned out of band, never via the public API.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
