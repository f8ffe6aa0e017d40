package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/storerate/rating-api/internal/core/ports"
)

// UserHandler serves the /user routes: registration, login and the
// signed-in user's own account.
type UserHandler struct {
	auth ports.AuthService
}

func NewUserHandler(auth ports.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// Register creates a USER account.
// POST /user/register
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}
	return created(c, toUserResponse(user))
}

// Login exchanges credentials for a bearer token.
// POST /user/login
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return ok(c, loginResponse{
		Token: res.Token,
		Name:  res.User.Name,
		Email: res.User.Email,
		Role:  res.User.Role,
	})
}

// ChangePassword updates the caller's password.
// PUT /user/password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.Request().Context(), p.SubjectID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return ok(c, messageResponse{Message: "password updated"})
}

// Logout is a no-op; tokens are stateless and expire on their own.
// POST /user/logout
func (h *UserHandler) Logout(c echo.Context) error {
	return ok(c, messageResponse{Message: "logged out"})
}
