package domain

import "time"

const DefaultAvatarURL = "https://via.placeholder.com/150"

// User is an authenticatable principal. PasswordHash is an argon2id
// PHC string; the plaintext is never stored.
type User struct {
	ID           string
	Username     string // unique
	Email        string // unique
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLogin    *time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
