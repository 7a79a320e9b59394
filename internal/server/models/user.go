package models

import "time"

// User is the persisted identity record. Username and email are unique across
// all users (enforced by the store). PasswordHash never leaves the service
// layer in plaintext or hashed form; outbound projections use UserSummary.
type User struct {
	ID           string
	Name         string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserSummary is the password-free projection of a User.
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary redacts the user into its outbound form.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
}
