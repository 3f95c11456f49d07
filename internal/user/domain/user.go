package domain

import "time"

type ID string

// User carries the stored credential state. PasswordHash is always a hash of
// the current password; plaintext never lives on this struct.
type User struct {
	ID           ID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Public is the only outward representation of a User. The password hash and
// token list have no serialized form.
type Public struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u User) Public() Public {
	return Public{
		ID:    string(u.ID),
		Email: u.Email,
	}
}
