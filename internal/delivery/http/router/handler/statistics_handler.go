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

// StatisticsHandler holds dependencies for the settlement report handler.
type StatisticsHandler struct {
	statisticsUC usecase.StatisticsUsecase
	logger       *slog.Logger
}

// NewStatisticsHandler is the constructor for StatisticsHandler, injected by Fx.
func NewStatisticsHandler(statisticsUC usecase.StatisticsUsecase, logger *slog.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsUC: statisticsUC,
		logger:       logger,
	}
}

// Report handles the per-supplier settlement report request.
func (h *StatisticsHandler) Report(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "未登录")
	}

	report, err := h.statisticsUC.Report(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "获取成功")
}
