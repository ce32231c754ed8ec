package repository

import (
	"context"
	"errors"

	"github.com/leogic/blog-backend/internal/models"
)

// ErrNotFound is returned when an id does not resolve to a stored record.
var ErrNotFound = errors.New("not found")

// DuplicateError reports a unique-constraint conflict and names the field
// the client collided on (username or email).
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return e.Field + " already exists" }

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
}

type Posts interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	// GetByID expands the author and every comment author to their
	// public projection; comments come back most-recent-first.
	GetByID(ctx context.Context, id string) (models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	Update(ctx context.Context, id string, upd models.PostUpdate) (models.Post, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int, error)

	AddComment(ctx context.Context, c models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, postID, commentID string) (models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
