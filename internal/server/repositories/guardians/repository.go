package guardians

import (
	"context"

	"github.com/dkovalenko/keywarden/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Guardian, error)
	Add(ctx context.Context, address string) error
	Remove(ctx context.Context, address string) error
}
