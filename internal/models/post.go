package models

import "time"

const (
	MaxTitleLen    = 100
	MaxUsernameLen = 20
	MinPasswordLen = 6
)

type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Image     string     `json:"image"`
	Tags      []string   `json:"tags"`
	AuthorID  string     `json:"authorId"`
	Author    PublicUser `json:"author"`
	Views     int        `json:"views"`
	Comments  []Comment  `json:"comments"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Comment struct {
	ID        string     `json:"id"`
	PostID    string     `json:"-"`
	Content   string     `json:"content"`
	AuthorID  string     `json:"authorId"`
	Author    PublicUser `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

// PostUpdate carries a partial post mutation. Nil fields are left untouched;
// RemoveImage clears the image regardless of the Image field.
type PostUpdate struct {
	Title       *string
	Content     *string
	Image       *string
	Tags        []string
	RemoveImage bool
}
