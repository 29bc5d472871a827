package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookkeep/internal/delivery/http/response"
	domainerrors "bookkeep/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestErrorContext(t *testing.T) (*ErrorMiddleware, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
	rec := httptest.NewRecorder()

	return NewErrorMiddleware(newDiscardLogger()), e.NewContext(req, rec), rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestErrorMiddleware_AppError(t *testing.T) {
	m, c, rec := newTestErrorContext(t)

	m.HandleHTTPError(errors.WithStack(domainerrors.ErrForbidden), c)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeErrorBody(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusForbidden, body.Code)
	assert.Equal(t, "无权执行此操作", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestErrorMiddleware_AppErrorWithDetails(t *testing.T) {
	m, c, rec := newTestErrorContext(t)

	err := domainerrors.ErrInvalidStatus.WithDetails("valid statuses: draft, submitted, confirmed, invalid")
	m.HandleHTTPError(errors.WithStack(err), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeErrorBody(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INVALID_STATUS", body.Error.Code)
	assert.Equal(t, "valid statuses: draft, submitted, confirmed, invalid", body.Error.Details)
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	m, c, rec := newTestErrorContext(t)

	m.HandleHTTPError(echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), c)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	body := decodeErrorBody(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Method Not Allowed", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "HTTP_ERROR", body.Error.Code)
}

func TestErrorMiddleware_UnknownError(t *testing.T) {
	m, c, rec := newTestErrorContext(t)

	m.HandleHTTPError(errors.New("unexpected failure"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeErrorBody(t, rec)
	assert.Equal(t, "服务器内部错误", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}

func TestErrorMiddleware_CommittedResponse(t *testing.T) {
	m, c, rec := newTestErrorContext(t)

	require.NoError(t, c.NoContent(http.StatusOK))
	m.HandleHTTPError(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
