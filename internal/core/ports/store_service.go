package ports

import (
	"context"

	"github.com/storerate/rating-api/internal/core/domain"
)

// CreateStoreInput carries the fields of a new store.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// StoreService creates stores after checking their owner reference.
type StoreService interface {
	CreateStore(ctx context.Context, input CreateStoreInput) (*domain.Store, error)
}
