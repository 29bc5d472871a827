package middleware

import (
	"slices"

	"bookkeep/config"
	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// principalKey is the echo context key holding the authenticated principal.
	principalKey = "principal"

	// sessionTokenKey is the echo context key holding the raw session token.
	sessionTokenKey = "sessionToken"
)

// AuthMiddleware provides middleware for session cookie authentication and authorization.
type AuthMiddleware struct {
	sessions service.SessionStore
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions service.SessionStore, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, cfg: cfg}
}

// Authenticate is the core middleware function that resolves the session cookie.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cfg.Session.CookieName)
		if err != nil || cookie.Value == "" {
			return errors.WithStack(domainerrors.ErrUnauthenticated)
		}

		session, err := m.sessions.Get(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				return errors.WithStack(domainerrors.ErrSessionExpired)
			}

			return errors.WithStack(err)
		}

		// Set the identity on the context for handlers to use
		c.Set(principalKey, session.Principal())
		c.Set(sessionTokenKey, session.Token)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has one of the roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return errors.WithStack(domainerrors.ErrUnauthenticated)
			}

			if !slices.Contains(roles, principal.Role) {
				return errors.WithStack(domainerrors.ErrForbidden)
			}

			return next(c)
		}
	}
}

// GetPrincipal extracts the principal set by Authenticate.
func GetPrincipal(c echo.Context) (entity.Principal, bool) {
	principal, ok := c.Get(principalKey).(entity.Principal)

	return principal, ok
}

// GetSessionToken extracts the raw session token set by Authenticate.
func GetSessionToken(c echo.Context) (string, bool) {
	token, ok := c.Get(sessionTokenKey).(string)

	return token, ok
}
