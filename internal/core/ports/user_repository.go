package ports

import (
	"context"

	"github.com/storerate/rating-api/internal/core/domain"
)

// UserFilter narrows an admin user listing. Name, Email and Address are
// case-insensitive substring matches; Role is exact. Empty fields are ignored.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    domain.Role
}

// UserRepository defines persistence for user accounts.
// Lookups that match nothing return domain.ErrNotFound; infrastructure
// failures return domain.ErrStorageUnavailable.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
