package stats

import (
	"context"

	"github.com/TusharG27x/codebuddy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) (*models.Stats, error)
	Increment(ctx context.Context, userID string, counter models.StatsCounter) error
}
