package handler

import (
	"time"

	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address"  validate:"max=400"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type rateRequest struct {
	StoreID string `json:"storeId" validate:"required"`
	Rating  int    `json:"rating"  validate:"min=1,max=5"`
}

type createUserRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address"  validate:"max=400"`
	Role     string `json:"role"     validate:"required"`
}

type createStoreRequest struct {
	Name    string `json:"name"    validate:"required,max=60"`
	Email   string `json:"email"   validate:"required,email"`
	Address string `json:"address" validate:"max=400"`
	OwnerID string `json:"ownerId" validate:"required"`
}

// --- Response types ---

type loginResponse struct {
	Token string      `json:"token"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type userResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Address   string          `json:"address"`
	Role      domain.Role     `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	Average   *domain.Average `json:"average,omitempty"`
}

type storeResponse struct {
	ID         string         `json:"id"`
	OwnerID    string         `json:"ownerId"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Address    string         `json:"address"`
	Average    domain.Average `json:"average"`
	UserRating *int           `json:"userRating,omitempty"`
}

type rateResponse struct {
	StoreID   string    `json:"storeId"`
	Rating    int       `json:"rating"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type raterResponse struct {
	UserID  string `json:"userId"`
	StoreID string `json:"storeId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
}

type ownerDashboardResponse struct {
	Average domain.Average  `json:"average"`
	Raters  []raterResponse `json:"raters"`
}

type countsResponse struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Mappers ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toStoreResponse(s *domain.Store, avg domain.Average, own *int) storeResponse {
	return storeResponse{
		ID:         s.ID,
		OwnerID:    s.OwnerID,
		Name:       s.Name,
		Email:      s.Email,
		Address:    s.Address,
		Average:    avg,
		UserRating: own,
	}
}

func toListingResponse(items []ports.StoreListingItem) []storeResponse {
	out := make([]storeResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toStoreResponse(it.Store, it.Average, it.UserRating))
	}
	return out
}

func toOwnerDashboardResponse(s *ports.OwnerSummary) ownerDashboardResponse {
	raters := make([]raterResponse, 0, len(s.Raters))
	for _, r := range s.Raters {
		raters = append(raters, raterResponse{
			UserID:  r.UserID,
			StoreID: r.StoreID,
			Name:    r.Name,
			Email:   r.Email,
			Rating:  r.Rating,
		})
	}
	return ownerDashboardResponse{Average: s.Average, Raters: raters}
}
