package ports

import (
	"context"

	"github.com/storerate/rating-api/internal/core/domain"
)

// RatingService validates and records ratings and answers per-store
// questions about them.
type RatingService interface {
	Submit(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
	AverageFor(ctx context.Context, storeID string) (domain.Average, error)
	ListForStore(ctx context.Context, storeID string) ([]domain.Rating, error)
}
