package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storerate/rating-api/internal/core/domain"
	"github.com/storerate/rating-api/internal/infrastructure/token"
)

const testSecret = "gate-secret"

func runGate(t *testing.T, target, authHeader string) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Gate(token.NewAuthority(testSecret, 0))(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	return c, called, err
}

func TestGate_AllowsAnonymousPaths(t *testing.T) {
	for _, target := range []string{
		"/user/register",
		"/user/login",
		"/user/login/",
		"//user//login",
		"/user/./login",
		"/user/x/../login",
		"/user/login%0A",
		"/user/login%0d%0a",
		"/user/login%09",
		"/user%2Flogin",
	} {
		c, called, err := runGate(t, target, "")
		if err != nil || !called {
			t.Fatalf("%s: expected pass-through, got called=%v err=%v", target, called, err)
		}
		if p := c.Request().URL.Path; p != "/user/login" && p != "/user/register" {
			t.Fatalf("%s: request path not rewritten, got %q", target, p)
		}
	}
}

func TestGate_EncodedControlCharsDecideLikeCanonical(t *testing.T) {
	for _, pair := range [][2]string{
		{"/store", "/store%0A"},
		{"/admin/users", "/admin/users%0D%0A"},
		{"/user/password", "/user/password%00"},
	} {
		_, _, canonical := runGate(t, pair[0], "")
		_, _, encoded := runGate(t, pair[1], "")
		if !errors.Is(canonical, domain.ErrMissingToken) || !errors.Is(encoded, domain.ErrMissingToken) {
			t.Fatalf("%v: expected both rejected with ErrMissingToken, got %v / %v", pair, canonical, encoded)
		}
	}
}

func TestGate_MissingToken(t *testing.T) {
	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "token"} {
		_, called, err := runGate(t, "/store", header)
		if !errors.Is(err, domain.ErrMissingToken) {
			t.Fatalf("header %q: expected ErrMissingToken, got %v", header, err)
		}
		if called {
			t.Fatalf("header %q: next must not run", header)
		}
	}
}

func TestGate_InvalidToken(t *testing.T) {
	_, called, err := runGate(t, "/store", "Bearer not-a-jwt")
	if !errors.Is(err, domain.ErrInvalidToken) || !errors.Is(err, domain.ErrMalformed) {
		t.Fatalf("expected ErrInvalidToken wrapping ErrMalformed, got %v", err)
	}
	if called {
		t.Fatalf("next must not run")
	}

	forged, _ := token.NewAuthority("other-secret", 0).Issue("u1", domain.RoleAdmin)
	if _, _, err := runGate(t, "/admin/users", "Bearer "+forged); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestGate_ExpiredToken(t *testing.T) {
	old := token.NewAuthority(testSecret, 0).WithClock(func() time.Time {
		return time.Now().Add(-25 * time.Hour)
	})
	tok, err := old.Issue("u1", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, _, err = runGate(t, "/store", "Bearer "+tok)
	if !errors.Is(err, domain.ErrInvalidToken) || !errors.Is(err, domain.ErrExpired) {
		t.Fatalf("expected ErrInvalidToken wrapping ErrExpired, got %v", err)
	}
}

func TestGate_AttachesPrincipal(t *testing.T) {
	tok, _ := token.NewAuthority(testSecret, 0).Issue("owner-1", domain.RoleStoreOwner)

	c, called, err := runGate(t, "/store/owner/dashboard/", "bearer "+tok)
	if err != nil || !called {
		t.Fatalf("expected pass-through, got called=%v err=%v", called, err)
	}
	p, ok := domain.PrincipalFromContext(c.Request().Context())
	if !ok || p.SubjectID != "owner-1" || p.Role != domain.RoleStoreOwner {
		t.Fatalf("unexpected principal: %+v ok=%v", p, ok)
	}
	if c.Request().URL.Path != "/store/owner/dashboard" {
		t.Fatalf("unexpected logical path %q", c.Request().URL.Path)
	}
}

func TestLogicalPath(t *testing.T) {
	cases := map[string]string{
		"":                    "/",
		"/":                   "/",
		"/store/":             "/store",
		"/store//search":      "/store/search",
		"/a/b/../../admin":    "/admin",
		"/../../admin":        "/admin",
		"/user/login%0A":      "/user/login",
		"%2Fuser%2Fregister":  "/user/register",
		" /store ":            "/store",
		"/store/search%3Fq=x": "/store/search?q=x",
		"/bad%zzescape":       "/bad%zzescape",
		"/user/register%250A": "/user/register%0A",
	}
	for in, want := range cases {
		if got := LogicalPath(in); got != want {
			t.Errorf("LogicalPath(%q) = %q, want %q", in, got, want)
		}
	}
}
