package ports

import (
	"context"

	"github.com/storerate/rating-api/internal/core/domain"
)

// RatingRepository persists the (user, store) → value relation.
type RatingRepository interface {
	// Upsert inserts or replaces the rating keyed by (UserID, StoreID) in a
	// single atomic storage operation.
	Upsert(ctx context.Context, rating *domain.Rating) error

	// Find returns the user's rating for a store, or domain.ErrNotFound.
	Find(ctx context.Context, userID, storeID string) (*domain.Rating, error)

	// AverageFor returns the mean of a store's ratings; Count is zero when
	// the store has none.
	AverageFor(ctx context.Context, storeID string) (domain.Average, error)

	// AverageForStores returns the mean over every rating of every given store.
	AverageForStores(ctx context.Context, storeIDs []string) (domain.Average, error)

	// ListForStores returns all ratings of the given stores in no particular order.
	ListForStores(ctx context.Context, storeIDs []string) ([]domain.Rating, error)

	Count(ctx context.Context) (int64, error)
}
