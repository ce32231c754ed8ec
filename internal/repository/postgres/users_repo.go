package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leogic/blog-backend/internal/models"
	"github.com/leogic/blog-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const userCols = `id, username, email, password_hash, profile_photo, role, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.ProfilePhoto, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	return u, err
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users(id, username, email, password_hash, profile_photo, role)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+userCols,
		u.ID, u.Username, u.Email, u.PasswordHash, u.ProfilePhoto, u.Role,
	)
	out, err := scanUser(row)
	if err != nil {
		return models.User{}, mapDuplicate(err)
	}
	return out, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users
		    SET username=$2, email=$3, password_hash=$4, profile_photo=$5, updated_at=now()
		  WHERE id=$1
		  RETURNING `+userCols,
		u.ID, u.Username, u.Email, u.PasswordHash, u.ProfilePhoto,
	)
	out, err := scanUser(row)
	if err != nil {
		return models.User{}, mapDuplicate(err)
	}
	return out, nil
}

// mapDuplicate turns a postgres unique violation into a DuplicateError
// naming the conflicting field, keyed by constraint name.
func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return &repository.DuplicateError{Field: "username"}
		case strings.Contains(pgErr.ConstraintName, "email"):
			return &repository.DuplicateError{Field: "email"}
		}
		return &repository.DuplicateError{Field: pgErr.ConstraintName}
	}
	return err
}
