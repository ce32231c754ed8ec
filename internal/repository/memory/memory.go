// Package memory holds in-memory repository implementations used by tests.
// They mirror the postgres semantics: unique username/email, cascading
// comment deletes, most-recent-first comment ordering.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leogic/blog-backend/internal/models"
	"github.com/leogic/blog-backend/internal/repository"
)

type Users struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUsers() *Users {
	return &Users{users: map[string]models.User{}}
}

func (r *Users) Create(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(u); err != nil {
		return models.User{}, err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = u
	return u, nil
}

func (r *Users) checkUnique(u models.User) error {
	for _, other := range r.users {
		if other.ID == u.ID {
			continue
		}
		if other.Username == u.Username {
			return &repository.DuplicateError{Field: "username"}
		}
		if other.Email == u.Email {
			return &repository.DuplicateError{Field: "email"}
		}
	}
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *Users) Update(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.users[u.ID]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	if err := r.checkUnique(u); err != nil {
		return models.User{}, err
	}
	u.CreatedAt = old.CreatedAt
	u.UpdatedAt = time.Now()
	r.users[u.ID] = u
	return u, nil
}

type Posts struct {
	mu    sync.RWMutex
	users *Users
	posts map[string]*models.Post
	order []string // creation order, oldest first
}

func NewPosts(users *Users) *Posts {
	return &Posts{users: users, posts: map[string]*models.Post{}}
}

func (r *Posts) expand(p models.Post) models.Post {
	if u, err := r.users.GetByID(context.Background(), p.AuthorID); err == nil {
		p.Author = u.Public()
	}
	comments := make([]models.Comment, len(p.Comments))
	copy(comments, p.Comments)
	for i := range comments {
		if u, err := r.users.GetByID(context.Background(), comments[i].AuthorID); err == nil {
			comments[i].Author = u.Public()
		}
	}
	p.Comments = comments
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

func (r *Posts) Create(_ context.Context, p models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	p.Comments = []models.Comment{}
	r.posts[p.ID] = &p
	r.order = append(r.order, p.ID)
	return r.expand(p), nil
}

func (r *Posts) GetByID(_ context.Context, id string) (models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return models.Post{}, repository.ErrNotFound
	}
	return r.expand(*p), nil
}

func (r *Posts) List(_ context.Context) ([]models.Post, error) {
	return r.listWhere(func(models.Post) bool { return true })
}

func (r *Posts) ListByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	return r.listWhere(func(p models.Post) bool { return p.AuthorID == authorID })
}

func (r *Posts) listWhere(keep func(models.Post) bool) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Post{}
	for i := len(r.order) - 1; i >= 0; i-- { // newest first
		p, ok := r.posts[r.order[i]]
		if !ok || !keep(*p) {
			continue
		}
		out = append(out, r.expand(*p))
	}
	return out, nil
}

func (r *Posts) Update(_ context.Context, id string, upd models.PostUpdate) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return models.Post{}, repository.ErrNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	switch {
	case upd.RemoveImage:
		p.Image = ""
	case upd.Image != nil:
		p.Image = *upd.Image
	}
	if upd.Tags != nil {
		p.Tags = upd.Tags
	}
	p.UpdatedAt = time.Now()
	return r.expand(*p), nil
}

func (r *Posts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *Posts) IncrementViews(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	p.Views++
	return p.Views, nil
}

func (r *Posts) AddComment(_ context.Context, c models.Comment) (models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[c.PostID]
	if !ok {
		return models.Comment{}, repository.ErrNotFound
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	p.Comments = append([]models.Comment{c}, p.Comments...)
	if u, err := r.users.GetByID(context.Background(), c.AuthorID); err == nil {
		c.Author = u.Public()
	}
	return c, nil
}

func (r *Posts) GetComment(_ context.Context, postID, commentID string) (models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[postID]
	if !ok {
		return models.Comment{}, repository.ErrNotFound
	}
	for _, c := range p.Comments {
		if c.ID == commentID {
			if u, err := r.users.GetByID(context.Background(), c.AuthorID); err == nil {
				c.Author = u.Public()
			}
			return c, nil
		}
	}
	return models.Comment{}, repository.ErrNotFound
}

func (r *Posts) DeleteComment(_ context.Context, postID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, c := range p.Comments {
		if c.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type AuditLogs struct {
	mu   sync.Mutex
	Logs []models.AuditLog
}

func NewAuditLogs() *AuditLogs {
	return &AuditLogs{}
}

func (r *AuditLogs) Create(_ context.Context, l models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Logs = append(r.Logs, l)
	return nil
}
