package accounts

import (
	"context"

	"github.com/dkovalenko/keywarden/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context) (*models.Account, error)
	Create(ctx context.Context, owner string) error
	SetOwner(ctx context.Context, owner string) error
	SetPaused(ctx context.Context, paused bool) error
}
