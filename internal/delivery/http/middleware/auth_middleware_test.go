package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookkeep/config"
	"bookkeep/internal/domain/entity"
	domainerrors "bookkeep/internal/domain/errors"
	"bookkeep/internal/domain/service"
	mockSvc "bookkeep/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookieName = "bookkeep_session"

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, *mockSvc.MockSessionStore) {
	sessions := mockSvc.NewMockSessionStore(t)

	cfg := &config.Config{}
	cfg.Session.CookieName = testCookieName

	return NewAuthMiddleware(sessions, cfg), sessions
}

func newTestContext(cookie *http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func noopNext(c echo.Context) error {
	return nil
}

func TestAuthMiddleware_Authenticate_MissingCookie(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	c, _ := newTestContext(nil)

	nextCalled := false
	err := m.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return nil
	})(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
	assert.False(t, nextCalled)
}

func TestAuthMiddleware_Authenticate_EmptyCookie(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	c, _ := newTestContext(&http.Cookie{Name: testCookieName, Value: ""})

	err := m.Authenticate(noopNext)(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestAuthMiddleware_Authenticate_UnknownToken(t *testing.T) {
	m, sessions := newTestAuthMiddleware(t)
	c, _ := newTestContext(&http.Cookie{Name: testCookieName, Value: "stale-token"})

	sessions.EXPECT().Get(c.Request().Context(), "stale-token").Return(nil, service.ErrSessionNotFound)

	err := m.Authenticate(noopNext)(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionExpired))
}

func TestAuthMiddleware_Authenticate_StoreError(t *testing.T) {
	m, sessions := newTestAuthMiddleware(t)
	c, _ := newTestContext(&http.Cookie{Name: testCookieName, Value: "token-1"})

	storeErr := errors.New("store unavailable")
	sessions.EXPECT().Get(c.Request().Context(), "token-1").Return(nil, storeErr)

	err := m.Authenticate(noopNext)(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, storeErr))
	assert.False(t, errors.Is(err, domainerrors.ErrSessionExpired))
}

func TestAuthMiddleware_Authenticate_SetsPrincipal(t *testing.T) {
	m, sessions := newTestAuthMiddleware(t)
	c, _ := newTestContext(&http.Cookie{Name: testCookieName, Value: "token-1"})

	sessions.EXPECT().Get(c.Request().Context(), "token-1").Return(&entity.Session{
		Token:     "token-1",
		UserID:    7,
		Username:  "group",
		Role:      entity.RoleGroupUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	nextCalled := false
	err := m.Authenticate(func(c echo.Context) error {
		nextCalled = true

		principal, ok := GetPrincipal(c)
		require.True(t, ok)
		assert.Equal(t, uint(7), principal.UserID)
		assert.Equal(t, "group", principal.Username)
		assert.Equal(t, entity.RoleGroupUser, principal.Role)

		token, ok := GetSessionToken(c)
		require.True(t, ok)
		assert.Equal(t, "token-1", token)

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, nextCalled)
}

func TestAuthMiddleware_RequireRole_Allows(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	c, _ := newTestContext(nil)
	c.Set(principalKey, entity.Principal{UserID: 1, Username: "admin", Role: entity.RoleAdmin})

	nextCalled := false
	err := m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		nextCalled = true

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, nextCalled)
}

func TestAuthMiddleware_RequireRole_Forbids(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	c, _ := newTestContext(nil)
	c.Set(principalKey, entity.Principal{UserID: 9, Username: "student", Role: entity.RoleStudent})

	err := m.RequireRole(entity.RoleAdmin)(noopNext)(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestAuthMiddleware_RequireRole_WithoutPrincipal(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	c, _ := newTestContext(nil)

	err := m.RequireRole(entity.RoleAdmin)(noopNext)(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}
