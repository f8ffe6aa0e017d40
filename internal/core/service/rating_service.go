package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerate/rating-api/internal/api/metrics"
	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

type ratingService struct {
	ratings ports.RatingRepository
	stores  ports.StoreRepository
	log     zerolog.Logger
}

// NewRatingService returns a RatingService implementation.
func NewRatingService(ratings ports.RatingRepository, stores ports.StoreRepository, log zerolog.Logger) ports.RatingService {
	return &ratingService{ratings: ratings, stores: stores, log: log}
}

// Submit validates value and stores it as the user's only rating for the
// store. Concurrent submissions are serialized by the repository upsert; the
// last write to complete wins.
func (s *ratingService) Submit(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	if err := domain.ValidateRatingValue(value); err != nil {
		metrics.RatingsSubmittedTotal.WithLabelValues("invalid_value").Inc()
		return nil, err
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.RatingsSubmittedTotal.WithLabelValues("store_not_found").Inc()
			return nil, fmt.Errorf("submit rating: store %q: %w", storeID, err)
		}
		metrics.RatingsSubmittedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	rating := &domain.Rating{
		UserID:    userID,
		StoreID:   storeID,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		metrics.RatingsSubmittedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	metrics.RatingsSubmittedTotal.WithLabelValues("stored").Inc()
	s.log.Info().
		Str("user_id", userID).
		Str("store_id", storeID).
		Int("rating", value).
		Msg("rating stored")

	return rating, nil
}

// AverageFor returns the store's mean rating or an Average with no data.
func (s *ratingService) AverageFor(ctx context.Context, storeID string) (domain.Average, error) {
	avg, err := s.ratings.AverageFor(ctx, storeID)
	if err != nil {
		return domain.Average{}, fmt.Errorf("average for %q: %w", storeID, err)
	}
	return avg, nil
}

// ListForStore returns the store's ratings in no particular order.
func (s *ratingService) ListForStore(ctx context.Context, storeID string) ([]domain.Rating, error) {
	ratings, err := s.ratings.ListForStores(ctx, []string{storeID})
	if err != nil {
		return nil, fmt.Errorf("list ratings for %q: %w", storeID, err)
	}
	return ratings, nil
}
