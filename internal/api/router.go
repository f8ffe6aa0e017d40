package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/storerate/rating-api/internal/api/handler"
	"github.com/storerate/rating-api/internal/api/middleware"
	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

const defaultRequestTimeout = 10 * time.Second

// Deps are the collaborators the public API is built from.
type Deps struct {
	Verifier  ports.TokenVerifier
	Auth      ports.AuthService
	Ratings   ports.RatingService
	Stores    ports.StoreService
	Dashboard ports.DashboardService
	Logger    zerolog.Logger

	// RequestTimeout bounds every request; defaults to 10s.
	RequestTimeout time.Duration
	// Registerer receives the HTTP metrics; defaults to the global registry.
	Registerer prometheus.Registerer
}

// rolePolicy maps each route group prefix to the roles allowed inside it.
// Routes added under a prefix inherit its guard.
var rolePolicy = []struct {
	prefix string
	roles  []domain.Role
}{
	{prefix: "/admin", roles: []domain.Role{domain.RoleAdmin}},
	{prefix: "/store/owner", roles: []domain.Role{domain.RoleStoreOwner}},
	{prefix: "/store", roles: domain.Roles},
	{prefix: "/user", roles: domain.Roles},
}

// NewRouter builds the public API with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	// --- Before routing: the gate rewrites the path the router sees ---
	e.Pre(echomiddleware.Recover())
	e.Pre(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Pre(requestLogger(deps.Logger))
	e.Pre(middleware.Gate(deps.Verifier))

	// --- After routing ---
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "ratingapi",
		Registerer: deps.Registerer,
	}))
	e.Use(echomiddleware.ContextTimeout(timeout))

	users := handler.NewUserHandler(deps.Auth)
	stores := handler.NewStoreHandler(deps.Ratings, deps.Dashboard)
	admin := handler.NewAdminHandler(deps.Auth, deps.Stores, deps.Dashboard)

	// --- Anonymous ---
	e.POST("/user/register", users.Register)
	e.POST("/user/login", users.Login)

	groups := make(map[string]*echo.Group, len(rolePolicy))
	for _, p := range rolePolicy {
		groups[p.prefix] = e.Group(p.prefix, middleware.RoleGuard(p.roles...))
	}

	// --- Any signed-in role ---
	groups["/user"].PUT("/password", users.ChangePassword)
	groups["/user"].POST("/logout", users.Logout)

	groups["/store"].GET("", stores.List)
	groups["/store"].GET("/search", stores.Search)
	groups["/store"].POST("/rate", stores.Rate)

	// --- Store owners ---
	groups["/store/owner"].GET("/dashboard", stores.OwnerDashboard)
	groups["/store/owner"].GET("/average", stores.OwnerAverage)

	// --- Admins ---
	groups["/admin"].GET("/dashboard", admin.Dashboard)
	groups["/admin"].GET("/users", admin.ListUsers)
	groups["/admin"].GET("/users/:id", admin.GetUser)
	groups["/admin"].GET("/stores", admin.ListStores)
	groups["/admin"].POST("/users", admin.CreateUser)
	groups["/admin"].POST("/stores", admin.CreateStore)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		HandleError:  true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			} else if v.Status >= 400 {
				ev = log.Warn()
			}
			if v.Error != nil {
				ev = ev.Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
