package services

import (
	"context"
	"strings"

	"github.com/leogic/blog-backend/internal/access"
	"github.com/leogic/blog-backend/internal/api/validate"
	"github.com/leogic/blog-backend/internal/metrics"
	"github.com/leogic/blog-backend/internal/models"
	repo "github.com/leogic/blog-backend/internal/repository"
	"github.com/leogic/blog-backend/internal/worker"
)

type PostService struct {
	posts repo.Posts
	audit *auditor
}

func NewPostService(posts repo.Posts, logs repo.AuditLogs, wp *worker.Pool) *PostService {
	return &PostService{posts: posts, audit: &auditor{logs: logs, wp: wp}}
}

type PostInput struct {
	Title   string
	Content string
	Image   string
	Tags    []string
}

// Create stores a new post. The author is always the acting user; any
// author value a client sends never reaches this layer.
func (s *PostService) Create(ctx context.Context, actorID string, in PostInput) (models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate.Collect(
		validate.Required("title", in.Title),
		validate.MaxLen("title", in.Title, models.MaxTitleLen),
		validate.Required("content", in.Content),
	); err != nil {
		return models.Post{}, err
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}

	p, err := s.posts.Create(ctx, models.Post{
		Title:    in.Title,
		Content:  in.Content,
		Image:    in.Image,
		Tags:     in.Tags,
		AuthorID: actorID,
	})
	if err != nil {
		return models.Post{}, err
	}
	metrics.PostsCreated.Inc()
	s.audit.record("post", p.ID, "created", map[string]any{"author": actorID})
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id string) (models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

// Update applies a partial mutation after the ownership gate allows it.
func (s *PostService) Update(ctx context.Context, actorID, actorRole, id string, upd models.PostUpdate) (models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if !access.CanMutate(actorID, actorRole, p.AuthorID) {
		return models.Post{}, ErrForbidden
	}

	var checks []*validate.ErrField
	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		upd.Title = &t
		checks = append(checks,
			validate.Required("title", t),
			validate.MaxLen("title", t, models.MaxTitleLen))
	}
	if upd.Content != nil {
		checks = append(checks, validate.Required("content", *upd.Content))
	}
	if err := validate.Collect(checks...); err != nil {
		return models.Post{}, err
	}

	out, err := s.posts.Update(ctx, id, upd)
	if err != nil {
		return models.Post{}, err
	}
	s.audit.record("post", id, "updated", map[string]any{"actor": actorID})
	return out, nil
}

func (s *PostService) Delete(ctx context.Context, actorID, actorRole, id string) error {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanMutate(actorID, actorRole, p.AuthorID) {
		return ErrForbidden
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record("post", id, "deleted", map[string]any{"actor": actorID})
	return nil
}

// AddComment prepends a comment to the post; the response carries the
// comment with its author expanded.
func (s *PostService) AddComment(ctx context.Context, actorID, postID, content string) (models.Comment, error) {
	if err := validate.Collect(validate.Required("content", content)); err != nil {
		return models.Comment{}, err
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return models.Comment{}, err
	}
	c, err := s.posts.AddComment(ctx, models.Comment{
		PostID:   postID,
		AuthorID: actorID,
		Content:  content,
	})
	if err != nil {
		return models.Comment{}, err
	}
	metrics.CommentsAdded.Inc()
	s.audit.record("comment", c.ID, "created", map[string]any{"post": postID, "author": actorID})
	return c, nil
}

// DeleteComment gates on the comment's own author, not the post's.
func (s *PostService) DeleteComment(ctx context.Context, actorID, actorRole, postID, commentID string) error {
	c, err := s.posts.GetComment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !access.CanMutate(actorID, actorRole, c.AuthorID) {
		return ErrForbidden
	}
	if err := s.posts.DeleteComment(ctx, postID, commentID); err != nil {
		return err
	}
	s.audit.record("comment", commentID, "deleted", map[string]any{"post": postID, "actor": actorID})
	return nil
}

// RegisterView bumps the counter unconditionally; repeat calls from the
// same viewer always increment.
func (s *PostService) RegisterView(ctx context.Context, id string) (int, error) {
	views, err := s.posts.IncrementViews(ctx, id)
	if err != nil {
		return 0, err
	}
	metrics.PostViews.Inc()
	return views, nil
}
