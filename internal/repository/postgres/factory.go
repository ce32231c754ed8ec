package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/leogic/blog-backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Posts     repo.Posts
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Posts:     &postsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
