package blog

import (
	"errors"
	"time"
)

var ErrBlogNotFound = errors.New("blog not found")

type Blog struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// ImageURL is nil when the post has no image, an empty string never
	// reaches storage
	ImageURL *string `json:"imageUrl"`
	// AuthorID is set once at creation from the creating session, clients
	// can neither supply nor change it
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBlogFields is what the create handler persists after validation.
type NewBlogFields struct {
	Title    string
	Content  string
	ImageURL *string
	AuthorID string
}

// UpdateBlogFields is what the update handler persists: everything but the
// id, the author and the creation timestamp.
type UpdateBlogFields struct {
	Title    string
	Content  string
	ImageURL *string
}
