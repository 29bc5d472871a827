package handler

import (
	"log/slog"
	"net/http"

	"bookkeep/internal/delivery/http/middleware"
	"bookkeep/internal/delivery/http/response"
	"bookkeep/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ServiceRecordHandlerParams holds dependencies for ServiceRecordHandler, injected by Fx.
type ServiceRecordHandlerParams struct {
	fx.In

	ServiceUC usecase.ServiceRecordUsecase
	Logger    *slog.Logger
}

// ServiceRecordHandler holds dependencies for service record handlers.
type ServiceRecordHandler struct {
	serviceUC usecase.ServiceRecordUsecase
	logger    *slog.Logger
}

// NewServiceRecordHandler is the constructor for ServiceRecordHandler.
func NewServiceRecordHandler(params ServiceRecordHandlerParams) *ServiceRecordHandler {
	return &ServiceRecordHandler{
		serviceUC: params.ServiceUC,
		logger:    params.Logger,
	}
}

// CreateServiceRequest represents the request body for opening a service record.
type CreateServiceRequest struct {
	SupplierID   uint    `json:"supplier_id" validate:"required"`
	Content      string  `json:"content"`
	Amount       float64 `json:"amount" validate:"gte=0"`
	UserUsername string  `json:"user_username"`
}

// UpdateServiceRequest represents the request body for editing a record.
// Absent fields keep their stored value.
type UpdateServiceRequest struct {
	Content *string  `json:"content,omitempty"`
	Amount  *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
}

// Create handles the service record creation request.
func (h *ServiceRecordHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	var req CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的服务记录数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.serviceUC.Create(c.Request().Context(), principal, &usecase.CreateServiceInput{
		SupplierID:   req.SupplierID,
		Content:      req.Content,
		Amount:       req.Amount,
		UserUsername: req.UserUsername,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "服务记录创建成功")
}

// Get handles the single service record request.
func (h *ServiceRecordHandler) Get(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的服务记录ID")
	}

	view, err := h.serviceUC.Get(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "获取成功")
}

// List handles the service record page request.
func (h *ServiceRecordHandler) List(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	page, err := h.serviceUC.List(c.Request().Context(), principal, &usecase.ListServicesInput{
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

// Update handles the service record edit request.
func (h *ServiceRecordHandler) Update(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的服务记录ID")
	}

	var req UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的服务记录数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	view, err := h.serviceUC.Update(c.Request().Context(), principal, id, &usecase.UpdateServiceInput{
		Content: req.Content,
		Amount:  req.Amount,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "服务记录更新成功")
}

// UpdateStatus handles the service record lifecycle transition request.
func (h *ServiceRecordHandler) UpdateStatus(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的服务记录ID")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "无效的状态数据")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.serviceUC.UpdateStatus(c.Request().Context(), principal, id, &usecase.UpdateStatusInput{
		Status:  req.Status,
		Version: req.Version,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "服务记录状态更新成功")
}

// Delete handles the service record deletion request. Confirmed records are
// invalidated instead of removed; the message reports which happened.
func (h *ServiceRecordHandler) Delete(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "无效的服务记录ID")
	}

	outcome, err := h.serviceUC.Delete(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, outcome.Message)
}
