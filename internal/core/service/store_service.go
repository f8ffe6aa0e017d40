package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

type StoreService struct {
	stores ports.StoreRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewStoreService(stores ports.StoreRepository, users ports.UserRepository, logger zerolog.Logger) *StoreService {
	return &StoreService{stores: stores, users: users, logger: logger}
}

// CreateStore inserts a store whose OwnerID must reference a STORE_OWNER user.
func (s *StoreService) CreateStore(ctx context.Context, input ports.CreateStoreInput) (*domain.Store, error) {
	if input.Name == "" || input.OwnerID == "" {
		return nil, fmt.Errorf("create store: %w", domain.Invalid("name and owner are required"))
	}

	owner, err := s.users.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("create store: %w", domain.ErrInvalidOwner)
		}
		return nil, fmt.Errorf("create store: %w", err)
	}
	if owner.Role != domain.RoleStoreOwner {
		return nil, fmt.Errorf("create store: %w: user %s has role %s", domain.ErrInvalidOwner, owner.ID, owner.Role)
	}

	created, err := s.stores.Create(ctx, &domain.Store{
		OwnerID:   owner.ID,
		Name:      input.Name,
		Email:     normalizeEmail(input.Email),
		Address:   input.Address,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create store")
		return nil, err
	}

	s.logger.Info().Str("store_id", created.ID).Str("owner_id", owner.ID).Msg("store created")
	return created, nil
}
