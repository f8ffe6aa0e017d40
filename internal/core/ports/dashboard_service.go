package ports

import (
	"context"

	"github.com/storerate/rating-api/internal/core/domain"
)

// SystemCounts are independent totals; they are not read in one snapshot.
type SystemCounts struct {
	Users   int64
	Stores  int64
	Ratings int64
}

// StoreListingItem pairs a store with its average and, when the viewer has
// rated it, the viewer's own rating.
type StoreListingItem struct {
	Store      *domain.Store
	Average    domain.Average
	UserRating *int
}

// Rater is one person who rated a store belonging to an owner.
type Rater struct {
	UserID  string
	StoreID string
	Name    string
	Email   string
	Rating  int
}

// OwnerSummary is the store-owner dashboard.
type OwnerSummary struct {
	Average domain.Average
	Raters  []Rater
}

// UserDetail is a user plus, for store owners, the average across the
// stores they own.
type UserDetail struct {
	User    *domain.User
	Average *domain.Average
}

// DashboardService composes read-only views for users, owners and admins.
type DashboardService interface {
	SystemCounts(ctx context.Context) (*SystemCounts, error)
	StoreListing(ctx context.Context, viewerID string) ([]StoreListingItem, error)
	SearchStores(ctx context.Context, viewerID, query string) ([]StoreListingItem, error)
	OwnerSummary(ctx context.Context, ownerID string) (*OwnerSummary, error)
	AdminStores(ctx context.Context) ([]StoreListingItem, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	UserDetail(ctx context.Context, userID string) (*UserDetail, error)
}
