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

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(productUC usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUC: productUC,
		logger:    logger,
	}
}

// CreateProductRequest represents the request body for adding a product.
type CreateProductRequest struct {
	Name             string   `json:"name" validate:"required,max=100"`
	Brand            string   `json:"brand,omitempty"`
	Model            string   `json:"model,omitempty"`
	Specification    string   `json:"specification,omitempty"`
	InternalPrice    *float64 `json:"internal_price,omitempty" validate:"omitempty,gte=0"`
	TaxIncludedPrice float64  `json:"tax_included_price" validate:"gte=0"`
	SupplierID       uint     `json:"supplier_id" validate:"required"`
}

// UpdateProductRequest represents the request body for editing a product.
// Absent fields keep their stored value.
type UpdateProductRequest struct {
	Name             *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Brand            *string  `json:"brand,omitempty"`
	Model            *string  `json:"model,omitempty"`
	Specification    *string  `json:"specification,omitempty"`
	InternalPrice    *float64 `json:"internal_price,omitempty" validate:"omitempty,gte=0"`
	TaxIncludedPrice *float64 `json:"tax_included_price,omitempty" validate:"omitempty,gte=0"`
}

// List handles the catalog page request.
func (h *ProductHandler) List(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	page, err := h.productUC.List(c.Request().Context(), principal, &usecase.ListProductsInput{
		SupplierID: uintQuery(c, "supplier_id"),
		Name:       c.QueryParam("name"),
		Model:      c.QueryParam("model"),
		MinPrice:   floatQuery(c, "min_price"),
		MaxPrice:   floatQuery(c, "max_price"),
		Page:       intQuery(c, "page", 0),
		PageSize:   intQuery(c, "page_size", 0),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "获取成功")
}

// Get handles the single product request.
func (h *ProductHandler) Get(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的产品ID")
	}

	view, err := h.productUC.Get(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "获取成功")
}

// Create handles the product creation request.
func (h *ProductHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的产品数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.productUC.Create(c.Request().Context(), principal, &usecase.CreateProductInput{
		Name:             req.Name,
		Brand:            req.Brand,
		Model:            req.Model,
		Specification:    req.Specification,
		InternalPrice:    req.InternalPrice,
		TaxIncludedPrice: req.TaxIncludedPrice,
		SupplierID:       req.SupplierID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "产品创建成功")
}

// Update handles the product edit request.
func (h *ProductHandler) Update(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的产品ID")
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的产品数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.productUC.Update(c.Request().Context(), principal, id, &usecase.UpdateProductInput{
		Name:             req.Name,
		Brand:            req.Brand,
		Model:            req.Model,
		Specification:    req.Specification,
		InternalPrice:    req.InternalPrice,
		TaxIncludedPrice: req.TaxIncludedPrice,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "产品更新成功")
}

// Delete handles the product removal request.
func (h *ProductHandler) Delete(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的产品ID")
	}

	if err := h.productUC.Delete(c.Request().Context(), principal, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "产品删除成功")
}
