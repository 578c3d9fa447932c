package domain

import "time"

// Post is a blog entry owned by exactly one user. PublishedAt is set
// once at creation and never changes; OwnerID references the author by
// user id.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publication_date"`
	OwnerID     string    `json:"owner_id"`
}
