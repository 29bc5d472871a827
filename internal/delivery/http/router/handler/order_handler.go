package handler

import (
	"log/slog"
	"mime"
	"net/http"

	"bookkeep/internal/delivery/http/middleware"
	"bookkeep/internal/delivery/http/response"
	"bookkeep/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order lifecycle handlers.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// OrderItemRequest is one line item of an order creation request.
type OrderItemRequest struct {
	ProductID        uint     `json:"product_id" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	Model            string   `json:"model,omitempty"`
	Specification    string   `json:"specification,omitempty"`
	InternalPrice    *float64 `json:"internal_price,omitempty" validate:"omitempty,gte=0"`
	TaxIncludedPrice float64  `json:"tax_included_price" validate:"gte=0"`
	Quantity         int      `json:"quantity" validate:"min=1"`
	Muted            bool     `json:"muted"`
}

// CreateOrderRequest represents the request body for opening an order.
type CreateOrderRequest struct {
	SupplierID uint               `json:"supplier_id" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest represents the request body for a lifecycle transition.
type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Version *uint  `json:"version,omitempty"`
}

// Create handles the order creation request.
func (h *OrderHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的订单数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID:        item.ProductID,
			Name:             item.Name,
			Model:            item.Model,
			Specification:    item.Specification,
			InternalPrice:    item.InternalPrice,
			TaxIncludedPrice: item.TaxIncludedPrice,
			Quantity:         item.Quantity,
			Muted:            item.Muted,
		})
	}

	view, err := h.orderUC.Create(c.Request().Context(), principal, &usecase.CreateOrderInput{
		SupplierID: req.SupplierID,
		Items:      items,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "订单创建成功")
}

// Get handles the single order request.
func (h *OrderHandler) Get(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的订单ID")
	}

	view, err := h.orderUC.Get(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "获取成功")
}

// List handles the order page request.
func (h *OrderHandler) List(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	page, err := h.orderUC.List(c.Request().Context(), principal, &usecase.ListOrdersInput{
		SupplierID: uintQuery(c, "supplier_id"),
		Status:     strQuery(c, "status"),
		Content:    c.QueryParam("content"),
		MinAmount:  floatQuery(c, "min_amount"),
		MaxAmount:  floatQuery(c, "max_amount"),
		StartDate:  dateQuery(c, "start_date", false),
		EndDate:    dateQuery(c, "end_date", true),
		Page:       intQuery(c, "page", 0),
		PageSize:   intQuery(c, "page_size", 0),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "获取成功")
}

// UpdateStatus handles the order lifecycle transition request.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的订单ID")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的状态数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.orderUC.UpdateStatus(c.Request().Context(), principal, id, &usecase.UpdateStatusInput{
		Status:  req.Status,
		Version: req.Version,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "订单状态更新成功")
}

// Delete handles the order deletion request. Confirmed orders are invalidated
// instead of removed; the message reports which happened.
func (h *OrderHandler) Delete(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的订单ID")
	}

	outcome, err := h.orderUC.Delete(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, outcome.Message)
}

// Export handles the CSV download request.
func (h *OrderHandler) Export(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的订单ID")
	}

	export, err := h.orderUC.Export(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	// FormatMediaType percent-encodes the non-ASCII filename per RFC 2231.
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename}))

	return c.Blob(http.StatusOK, export.ContentType, export.Data)
}

// QRCode handles the order QR code request.
func (h *OrderHandler) QRCode(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的订单ID")
	}

	qrCode, err := h.orderUC.QRCode(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	// Return QR code as PNG image
	c.Response().Header().Set("Content-Disposition", "inline; filename=order-qr.png")

	return c.Blob(http.StatusOK, "image/png", qrCode)
}
