package ports

import (
	"context"

	"github.com/storerate/rating-api/internal/core/domain"
)

// RegisterInput carries self-service registration data. The resulting
// account always has domain.RoleUser.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// CreateUserInput carries an admin-created account of any role.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     domain.Role
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService covers account creation, login and password changes.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
