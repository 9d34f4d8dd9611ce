package model

import "time"

// User is an admin account. The password hash never leaves the repository layer
// except inside a Credential.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential pairs a user with its bcrypt password hash.
type Credential struct {
	User         User
	PasswordHash string
}
