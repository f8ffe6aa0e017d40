package ports

import "github.com/storerate/rating-api/internal/core/domain"

// TokenIssuer signs session tokens embedding a subject and its role.
type TokenIssuer interface {
	Issue(subjectID string, role domain.Role) (string, error)
}

// TokenVerifier checks a session token and returns the principal it carries.
// Failures wrap domain.ErrExpired, domain.ErrInvalidSignature or
// domain.ErrMalformed.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}
