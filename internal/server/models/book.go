package models

import "time"

// Book is a review entry. UserID is set at creation from the authenticated
// identity and never reassigned.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	Rating    int       `json:"rating"`
	Image     string    `json:"image"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`

	// Owner is populated only by the paginated listing, which expands the
	// owning user to {username, profileImage}.
	Owner *Owner `json:"owner,omitempty"`
}
