package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

// AdminHandler serves the /admin routes.
type AdminHandler struct {
	auth      ports.AuthService
	stores    ports.StoreService
	dashboard ports.DashboardService
}

func NewAdminHandler(auth ports.AuthService, stores ports.StoreService, dashboard ports.DashboardService) *AdminHandler {
	return &AdminHandler{auth: auth, stores: stores, dashboard: dashboard}
}

// Dashboard returns the user, store and rating totals.
// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c echo.Context) error {
	counts, err := h.dashboard.SystemCounts(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, countsResponse{Users: counts.Users, Stores: counts.Stores, Ratings: counts.Ratings})
}

// ListUsers filters users by name, email, address substrings and exact role.
// GET /admin/users?name=&email=&address=&role=
func (h *AdminHandler) ListUsers(c echo.Context) error {
	filter := ports.UserFilter{
		Name:    strings.TrimSpace(c.QueryParam("name")),
		Email:   strings.TrimSpace(c.QueryParam("email")),
		Address: strings.TrimSpace(c.QueryParam("address")),
	}
	if raw := c.QueryParam("role"); strings.TrimSpace(raw) != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return err
		}
		filter.Role = role
	}

	users, err := h.dashboard.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return ok(c, toUserResponses(users))
}

// GetUser returns one user; store owners include their average rating.
// GET /admin/users/:id
func (h *AdminHandler) GetUser(c echo.Context) error {
	detail, err := h.dashboard.UserDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	resp := toUserResponse(detail.User)
	resp.Average = detail.Average
	return ok(c, resp)
}

// ListStores returns every store with its average.
// GET /admin/stores
func (h *AdminHandler) ListStores(c echo.Context) error {
	items, err := h.dashboard.AdminStores(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, toListingResponse(items))
}

// CreateUser creates an account with any role.
// POST /admin/users
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	user, err := h.auth.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     role,
	})
	if err != nil {
		return err
	}
	return created(c, toUserResponse(user))
}

// CreateStore creates a store owned by an existing STORE_OWNER.
// POST /admin/stores
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	store, err := h.stores.CreateStore(c.Request().Context(), ports.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}
	return created(c, toStoreResponse(store, domain.Average{}, nil))
}
