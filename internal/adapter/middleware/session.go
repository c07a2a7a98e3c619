package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"simlok-backend/internal/domain/user"
)

const (
	// SessionCookie is the browser-facing session cookie name.
	SessionCookie = "simlok_session"
	// userContextKey is where the authenticated user lives in the echo context.
	userContextKey = "simlok:user"
)

// SessionValidator resolves a session token to its live user. Every request
// hits the session store; there is no client-side-only trust.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*user.User, error)
}

// Session authenticates every request from the simlok_session cookie, with
// an Authorization: Bearer fallback for non-browser clients.
func Session(auth SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing session"})
			}

			usr, err := auth.Validate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session invalid or expired"})
			}

			c.Set(userContextKey, usr)
			return next(c)
		}
	}
}

// RequireRoles rejects authenticated users whose role is not in the allow
// list. Must run after Session.
func RequireRoles(roles ...user.Role) echo.MiddlewareFunc {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			usr := CurrentUser(c)
			if usr == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing session"})
			}
			if _, ok := allowed[usr.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user set by Session, or nil.
func CurrentUser(c echo.Context) *user.User {
	usr, _ := c.Get(userContextKey).(*user.User)
	return usr
}

// SetCurrentUser injects a user into the request context. Handler tests use
// it to bypass the session store.
func SetCurrentUser(c echo.Context, usr *user.User) {
	c.Set(userContextKey, usr)
}

func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
