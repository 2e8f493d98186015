package audit

import (
	"context"

	"github.com/dkovalenko/keywarden/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, event *models.AuditEvent) error
	ListRecent(ctx context.Context, limit int) ([]*models.AuditEvent, error)
}
