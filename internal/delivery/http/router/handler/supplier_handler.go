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

// SupplierHandler holds dependencies for supplier management handlers.
type SupplierHandler struct {
	supplierUC usecase.SupplierUsecase
	logger     *slog.Logger
}

// NewSupplierHandler is the constructor for SupplierHandler, injected by Fx.
func NewSupplierHandler(supplierUC usecase.SupplierUsecase, logger *slog.Logger) *SupplierHandler {
	return &SupplierHandler{
		supplierUC: supplierUC,
		logger:     logger,
	}
}

// SupplierRequest represents the request body for creating or renaming a supplier.
type SupplierRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// List handles the supplier list request.
func (h *SupplierHandler) List(c echo.Context) error {
	views, err := h.supplierUC.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "获取成功")
}

// Get handles the single supplier request.
func (h *SupplierHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的厂家ID")
	}

	view, err := h.supplierUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "获取成功")
}

// Create handles the supplier creation request.
func (h *SupplierHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的厂家数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.supplierUC.Create(c.Request().Context(), principal, &usecase.SupplierInput{Name: req.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "厂家创建成功")
}

// Update handles the supplier rename request.
func (h *SupplierHandler) Update(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的厂家ID")
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的厂家数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.supplierUC.Update(c.Request().Context(), principal, id, &usecase.SupplierInput{Name: req.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "厂家更新成功")
}
