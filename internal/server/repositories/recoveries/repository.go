package recoveries

import (
	"context"

	"github.com/dkovalenko/keywarden/internal/server/models"
)

type Repository interface {
	GetActive(ctx context.Context) (*models.RecoveryRequest, error)
	Create(ctx context.Context, req *models.RecoveryRequest) error
	Deactivate(ctx context.Context, id string) error
	AddApproval(ctx context.Context, requestID string, guardian string) error
	ListApprovals(ctx context.Context, requestID string) ([]string, error)
}
