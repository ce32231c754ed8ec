package services

import (
	"context"

	"github.com/leogic/blog-backend/internal/models"
	repo "github.com/leogic/blog-backend/internal/repository"
	"github.com/leogic/blog-backend/internal/worker"
)

// auditor writes audit records off the request path via the worker pool.
type auditor struct {
	logs repo.AuditLogs
	wp   *worker.Pool
}

func (a *auditor) record(entityType, entityID, action string, details map[string]any) {
	if a == nil || a.logs == nil {
		return
	}
	l := models.AuditLog{
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	}
	if a.wp == nil {
		_ = a.logs.Create(context.Background(), l)
		return
	}
	a.wp.Submit(func() { _ = a.logs.Create(context.Background(), l) })
}
