package domain

import "time"

// User is the persisted account record. Only the bootstrap admin is ever created.
type User struct {
	Username     string     `json:"username"`
	PasswordHash string     `json:"password_hash"`
	Email        string     `json:"email,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Profile is the public view of a user returned to clients.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Profile strips credentials from the record.
func (u *User) Profile() Profile {
	return Profile{Username: u.Username, Email: u.Email}
}

// Principal is the identity carried by a verified token.
type Principal struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// UsersDocument is the root of the users collection.
type UsersDocument struct {
	Users []User `json:"users"`
}
