package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	createUserFn     func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	changePasswordFn func(ctx context.Context, userID, oldPassword, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createUserFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, userID, oldPassword, newPassword)
}

type stubRatingService struct {
	submitFn func(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
}

func (s *stubRatingService) Submit(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	return s.submitFn(ctx, userID, storeID, value)
}

func (s *stubRatingService) AverageFor(context.Context, string) (domain.Average, error) {
	return domain.Average{}, nil
}

func (s *stubRatingService) ListForStore(context.Context, string) ([]domain.Rating, error) {
	return nil, nil
}

type stubStoreService struct {
	createFn func(ctx context.Context, in ports.CreateStoreInput) (*domain.Store, error)
}

func (s *stubStoreService) CreateStore(ctx context.Context, in ports.CreateStoreInput) (*domain.Store, error) {
	return s.createFn(ctx, in)
}

type stubDashboard struct {
	countsFn    func(ctx context.Context) (*ports.SystemCounts, error)
	listingFn   func(ctx context.Context, viewerID string) ([]ports.StoreListingItem, error)
	searchFn    func(ctx context.Context, viewerID, q string) ([]ports.StoreListingItem, error)
	ownerFn     func(ctx context.Context, ownerID string) (*ports.OwnerSummary, error)
	adminFn     func(ctx context.Context) ([]ports.StoreListingItem, error)
	listUsersFn func(ctx context.Context, f ports.UserFilter) ([]*domain.User, error)
	detailFn    func(ctx context.Context, userID string) (*ports.UserDetail, error)
}

func (s *stubDashboard) SystemCounts(ctx context.Context) (*ports.SystemCounts, error) {
	return s.countsFn(ctx)
}

func (s *stubDashboard) StoreListing(ctx context.Context, viewerID string) ([]ports.StoreListingItem, error) {
	return s.listingFn(ctx, viewerID)
}

func (s *stubDashboard) SearchStores(ctx context.Context, viewerID, q string) ([]ports.StoreListingItem, error) {
	return s.searchFn(ctx, viewerID, q)
}

func (s *stubDashboard) OwnerSummary(ctx context.Context, ownerID string) (*ports.OwnerSummary, error) {
	return s.ownerFn(ctx, ownerID)
}

func (s *stubDashboard) AdminStores(ctx context.Context) ([]ports.StoreListingItem, error) {
	return s.adminFn(ctx)
}

func (s *stubDashboard) ListUsers(ctx context.Context, f ports.UserFilter) ([]*domain.User, error) {
	return s.listUsersFn(ctx, f)
}

func (s *stubDashboard) UserDetail(ctx context.Context, userID string) (*ports.UserDetail, error) {
	return s.detailFn(ctx, userID)
}

// newContext builds an echo context with the validator installed and, when
// p is non-nil, a principal attached as the gate would.
func newContext(method, target, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if p != nil {
		req = req.WithContext(domain.WithPrincipal(req.Context(), *p))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func intPtr(i int) *int { return &i }
