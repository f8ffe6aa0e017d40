package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storerate/rating-api/internal/core/ports"
)

// StoreHandler serves the /store routes for raters and store owners.
type StoreHandler struct {
	ratings   ports.RatingService
	dashboard ports.DashboardService
}

func NewStoreHandler(ratings ports.RatingService, dashboard ports.DashboardService) *StoreHandler {
	return &StoreHandler{ratings: ratings, dashboard: dashboard}
}

// List returns every store with its average and the caller's own rating.
// GET /store
func (h *StoreHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	items, err := h.dashboard.StoreListing(c.Request().Context(), p.SubjectID)
	if err != nil {
		return err
	}
	return ok(c, toListingResponse(items))
}

// Search filters the listing by name or address.
// GET /store/search?q=
func (h *StoreHandler) Search(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	items, err := h.dashboard.SearchStores(c.Request().Context(), p.SubjectID, q)
	if err != nil {
		return err
	}
	return ok(c, toListingResponse(items))
}

// Rate submits or replaces the caller's rating of a store.
// POST /store/rate
func (h *StoreHandler) Rate(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r, err := h.ratings.Submit(c.Request().Context(), p.SubjectID, req.StoreID, req.Rating)
	if err != nil {
		return err
	}
	return ok(c, rateResponse{StoreID: r.StoreID, Rating: r.Value, UpdatedAt: r.UpdatedAt})
}

// OwnerDashboard lists everyone who rated the caller's stores.
// GET /store/owner/dashboard
func (h *StoreHandler) OwnerDashboard(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	summary, err := h.dashboard.OwnerSummary(c.Request().Context(), p.SubjectID)
	if err != nil {
		return err
	}
	return ok(c, toOwnerDashboardResponse(summary))
}

// OwnerAverage returns the average across the caller's stores.
// GET /store/owner/average
func (h *StoreHandler) OwnerAverage(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	summary, err := h.dashboard.OwnerSummary(c.Request().Context(), p.SubjectID)
	if err != nil {
		return err
	}
	return ok(c, summary.Average)
}
