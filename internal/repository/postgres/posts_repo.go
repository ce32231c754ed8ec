package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leogic/blog-backend/internal/models"
	"github.com/leogic/blog-backend/internal/repository"
)

type postsRepo struct{ pool *pgxpool.Pool }

func NewPosts(pool *pgxpool.Pool) repository.Posts {
	return &postsRepo{pool: pool}
}

const postSelect = `
SELECT p.id, p.title, p.content, p.image, p.tags, p.author_id, p.views, p.created_at, p.updated_at,
       u.username, u.profile_photo
  FROM posts p
  JOIN users u ON u.id = p.author_id`

func scanPost(row pgx.Row) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Image, &p.Tags, &p.AuthorID,
		&p.Views, &p.CreatedAt, &p.UpdatedAt, &p.Author.Username, &p.Author.ProfilePhoto)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Post{}, repository.ErrNotFound
	}
	p.Author.ID = p.AuthorID
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, err
}

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO posts(id, title, content, image, tags, author_id) VALUES($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Title, p.Content, p.Image, p.Tags, p.AuthorID,
	)
	if err != nil {
		return models.Post{}, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id=$1`, id))
	if err != nil {
		return models.Post{}, err
	}
	comments, err := r.commentsFor(ctx, []string{p.ID})
	if err != nil {
		return models.Post{}, err
	}
	p.Comments = comments[p.ID]
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	return p, nil
}

func (r *postsRepo) List(ctx context.Context) ([]models.Post, error) {
	return r.list(ctx, postSelect+` ORDER BY p.created_at DESC`)
}

func (r *postsRepo) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return r.list(ctx, postSelect+` WHERE p.author_id=$1 ORDER BY p.created_at DESC`, authorID)
}

func (r *postsRepo) list(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	ids := []string{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return posts, nil
	}

	comments, err := r.commentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Comments = comments[posts[i].ID]
		if posts[i].Comments == nil {
			posts[i].Comments = []models.Comment{}
		}
	}
	return posts, nil
}

// commentsFor loads the comments of the given posts newest-first, with their
// authors expanded, grouped by post id.
func (r *postsRepo) commentsFor(ctx context.Context, postIDs []string) (map[string][]models.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.post_id, c.content, c.author_id, c.created_at, u.username, u.profile_photo
		   FROM comments c
		   JOIN users u ON u.id = c.author_id
		  WHERE c.post_id = ANY($1)
		  ORDER BY c.seq DESC`,
		postIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Content, &c.AuthorID, &c.CreatedAt,
			&c.Author.Username, &c.Author.ProfilePhoto); err != nil {
			return nil, err
		}
		c.Author.ID = c.AuthorID
		out[c.PostID] = append(out[c.PostID], c)
	}
	return out, rows.Err()
}

func (r *postsRepo) Update(ctx context.Context, id string, upd models.PostUpdate) (models.Post, error) {
	_, err := r.pool.Exec(ctx,
		`UPDATE posts
		    SET title   = COALESCE($2, title),
		        content = COALESCE($3, content),
		        image   = CASE WHEN $4 THEN '' WHEN $5::text IS NOT NULL THEN $5 ELSE image END,
		        tags    = COALESCE($6::text[], tags),
		        updated_at = now()
		  WHERE id=$1`,
		id, upd.Title, upd.Content, upd.RemoveImage, upd.Image, upd.Tags,
	)
	if err != nil {
		return models.Post{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *postsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *postsRepo) IncrementViews(ctx context.Context, id string) (int, error) {
	var views int
	err := r.pool.QueryRow(ctx,
		`UPDATE posts SET views = views + 1 WHERE id=$1 RETURNING views`, id,
	).Scan(&views)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	return views, err
}

func (r *postsRepo) AddComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO comments(id, post_id, author_id, content) VALUES($1,$2,$3,$4)`,
		c.ID, c.PostID, c.AuthorID, c.Content,
	)
	if err != nil {
		return models.Comment{}, err
	}
	return r.GetComment(ctx, c.PostID, c.ID)
}

func (r *postsRepo) GetComment(ctx context.Context, postID, commentID string) (models.Comment, error) {
	var c models.Comment
	err := r.pool.QueryRow(ctx,
		`SELECT c.id, c.post_id, c.content, c.author_id, c.created_at, u.username, u.profile_photo
		   FROM comments c
		   JOIN users u ON u.id = c.author_id
		  WHERE c.post_id=$1 AND c.id=$2`,
		postID, commentID,
	).Scan(&c.ID, &c.PostID, &c.Content, &c.AuthorID, &c.CreatedAt,
		&c.Author.Username, &c.Author.ProfilePhoto)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Comment{}, repository.ErrNotFound
	}
	c.Author.ID = c.AuthorID
	return c, err
}

func (r *postsRepo) DeleteComment(ctx context.Context, postID, commentID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM comments WHERE post_id=$1 AND id=$2`, postID, commentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
