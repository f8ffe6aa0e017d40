package middleware

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/storerate/rating-api/internal/api/metrics"
	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/core/ports"
)

// anonymous is the complete set of logical paths reachable without a token.
var anonymous = map[string]struct{}{
	"/user/register": {},
	"/user/login":    {},
}

// Gate authenticates every request before routing. It must be installed
// with echo.Pre so the router dispatches on the same logical path the
// allow-list decision used.
func Gate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			logical := LogicalPath(req.URL.EscapedPath())
			req.URL.Path = logical
			req.URL.RawPath = ""

			if _, ok := anonymous[logical]; ok {
				return next(c)
			}

			raw, ok := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrMissingToken
			}

			p, err := verifier.Verify(raw)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
			}

			c.SetRequest(req.WithContext(domain.WithPrincipal(req.Context(), p)))
			return next(c)
		}
	}
}

// LogicalPath reduces a raw request path to the form used for both the
// allow-list decision and routing: percent-decoded, stripped of control
// characters and surrounding whitespace, cleaned of dot segments and
// duplicate slashes, without a trailing slash.
func LogicalPath(raw string) string {
	p, err := url.PathUnescape(raw)
	if err != nil {
		p = raw
	}
	p = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, p)
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
