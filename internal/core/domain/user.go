package domain

import (
	"strings"
	"time"
)

// Role is the authorization level carried by a user and by every token
// issued to that user.
type Role string

const (
	RoleUser       Role = "USER"
	RoleStoreOwner Role = "STORE_OWNER"
	RoleAdmin      Role = "ADMIN"
)

// legacyStoreOwner is the value older rows hold after the role column was
// truncated to seven characters.
const legacyStoreOwner = "STORE_O"

// Roles lists every canonical role.
var Roles = []Role{RoleUser, RoleStoreOwner, RoleAdmin}

// ParseRole maps a stored or transmitted role value to its canonical Role.
// Matching is case-insensitive and accepts the truncated legacy owner value.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleStoreOwner), legacyStoreOwner:
		return RoleStoreOwner, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	}
	return "", Invalid("unknown role %q", s)
}

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStoreOwner, RoleAdmin:
		return true
	}
	return false
}

// User models an account that can authenticate against the API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
