// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"bookkeep/internal/delivery/http/middleware"
	"bookkeep/internal/delivery/http/response"
	"bookkeep/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account management handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(userUC usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUC: userUC,
		logger: logger,
	}
}

// CreateUserRequest represents the request body for creating an account.
type CreateUserRequest struct {
	Username   string  `json:"username" validate:"required,max=50"`
	Password   string  `json:"password" validate:"required"`
	Role       string  `json:"user_type" validate:"required"`
	SupplierID *uint   `json:"supplier_id,omitempty"`
	ManagerID  *uint   `json:"manager_id,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
}

// UpdatePasswordRequest represents the request body for setting a password.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the request body for student self-registration.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,max=50"`
	Password        string `json:"password" validate:"required"`
	ManagerUsername string `json:"manager_username" validate:"required"`
}

// List handles the account list request.
func (h *UserHandler) List(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	views, err := h.userUC.List(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "获取成功")
}

// Create handles the account creation request.
func (h *UserHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的用户数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.userUC.Create(c.Request().Context(), principal, &usecase.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Role:       req.Role,
		SupplierID: req.SupplierID,
		ManagerID:  req.ManagerID,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "用户创建成功")
}

// UpdatePassword handles the password change request. The caller resets their
// own password; admins reset anyone's.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的用户ID")
	}

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的密码数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.UpdatePasswordInput{Password: req.Password}

	if userID == principal.UserID {
		if err := h.userUC.UpdateOwnPassword(c.Request().Context(), principal, input); err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, nil, "密码修改成功")
	}

	view, err := h.userUC.UpdatePassword(c.Request().Context(), principal, userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "密码重置成功")
}

// Delete handles the account deletion request.
func (h *UserHandler) Delete(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	userID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的用户ID")
	}

	if err := h.userUC.Delete(c.Request().Context(), principal, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "用户删除成功")
}

// Register handles the student self-registration request. It needs no
// session.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的注册数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.userUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ManagerUsername: req.ManagerUsername,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "注册成功")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
