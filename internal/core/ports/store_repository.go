package ports

import (
	"context"

	"github.com/storerate/rating-api/internal/core/domain"
)

// StoreFilter narrows a store listing. Query matches name or address as a
// case-insensitive substring; OwnerID restricts to one owner's stores.
type StoreFilter struct {
	Query   string
	OwnerID string
}

// StoreRepository defines persistence for stores.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	List(ctx context.Context, filter StoreFilter) ([]*domain.Store, error)
	Count(ctx context.Context) (int64, error)
}
