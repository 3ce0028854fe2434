package models

import "time"

// User is the authorization anchor for every book mutation. PasswordHash is
// never serialized outward.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Owner is the subset of User embedded into list responses.
type Owner struct {
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}
