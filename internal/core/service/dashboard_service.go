package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

type dashboardService struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingRepository
}

// NewDashboardService returns a DashboardService composed from the three
// repositories. It never writes.
func NewDashboardService(users ports.UserRepository, stores ports.StoreRepository, ratings ports.RatingRepository) ports.DashboardService {
	return &dashboardService{users: users, stores: stores, ratings: ratings}
}

// SystemCounts reads each total separately; skew between them under
// concurrent writes is accepted.
func (s *dashboardService) SystemCounts(ctx context.Context) (*ports.SystemCounts, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	stores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stores: %w", err)
	}
	ratings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}
	return &ports.SystemCounts{Users: users, Stores: stores, Ratings: ratings}, nil
}

func (s *dashboardService) StoreListing(ctx context.Context, viewerID string) ([]ports.StoreListingItem, error) {
	return s.listing(ctx, viewerID, ports.StoreFilter{})
}

func (s *dashboardService) SearchStores(ctx context.Context, viewerID, query string) ([]ports.StoreListingItem, error) {
	return s.listing(ctx, viewerID, ports.StoreFilter{Query: query})
}

func (s *dashboardService) AdminStores(ctx context.Context) ([]ports.StoreListingItem, error) {
	return s.listing(ctx, "", ports.StoreFilter{})
}

// listing pairs every matching store with its average and, when viewerID is
// set, a point lookup of the viewer's own rating.
func (s *dashboardService) listing(ctx context.Context, viewerID string, filter ports.StoreFilter) ([]ports.StoreListingItem, error) {
	stores, err := s.stores.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	items := make([]ports.StoreListingItem, 0, len(stores))
	for _, st := range stores {
		avg, err := s.ratings.AverageFor(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("average for %s: %w", st.ID, err)
		}

		item := ports.StoreListingItem{Store: st, Average: avg}
		if viewerID != "" {
			own, err := s.ratings.Find(ctx, viewerID, st.ID)
			switch {
			case err == nil:
				v := own.Value
				item.UserRating = &v
			case errors.Is(err, domain.ErrNotFound):
			default:
				return nil, fmt.Errorf("own rating for %s: %w", st.ID, err)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// OwnerSummary averages every rating across the owner's stores and lists
// everyone who rated them.
func (s *dashboardService) OwnerSummary(ctx context.Context, ownerID string) (*ports.OwnerSummary, error) {
	storeIDs, err := s.ownerStoreIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := &ports.OwnerSummary{Raters: []ports.Rater{}}
	if len(storeIDs) == 0 {
		return summary, nil
	}

	summary.Average, err = s.ratings.AverageForStores(ctx, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("owner average: %w", err)
	}

	ratings, err := s.ratings.ListForStores(ctx, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("owner ratings: %w", err)
	}
	if len(ratings) == 0 {
		return summary, nil
	}

	userIDs := make([]string, 0, len(ratings))
	for _, r := range ratings {
		userIDs = append(userIDs, r.UserID)
	}
	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("raters: %w", err)
	}

	for _, r := range ratings {
		u, ok := users[r.UserID]
		if !ok {
			continue
		}
		summary.Raters = append(summary.Raters, ports.Rater{
			UserID:  u.ID,
			StoreID: r.StoreID,
			Name:    u.Name,
			Email:   u.Email,
			Rating:  r.Value,
		})
	}
	return summary, nil
}

func (s *dashboardService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UserDetail loads a user; store owners additionally get the average
// across all stores they own.
func (s *dashboardService) UserDetail(ctx context.Context, userID string) (*ports.UserDetail, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	detail := &ports.UserDetail{User: user}
	if user.Role != domain.RoleStoreOwner {
		return detail, nil
	}

	storeIDs, err := s.ownerStoreIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	avg := domain.Average{}
	if len(storeIDs) > 0 {
		if avg, err = s.ratings.AverageForStores(ctx, storeIDs); err != nil {
			return nil, fmt.Errorf("owner average: %w", err)
		}
	}
	detail.Average = &avg
	return detail, nil
}

func (s *dashboardService) ownerStoreIDs(ctx context.Context, ownerID string) ([]string, error) {
	stores, err := s.stores.List(ctx, ports.StoreFilter{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("owner stores: %w", err)
	}
	ids := make([]string, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	return ids, nil
}
