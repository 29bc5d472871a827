// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bookkeep/internal/delivery/http/middleware"
	"bookkeep/internal/delivery/http/router/handler"
	"bookkeep/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler          *handler.AuthHandler
	UserHandler          *handler.UserHandler
	SupplierHandler      *handler.SupplierHandler
	ProductHandler       *handler.ProductHandler
	OrderHandler         *handler.OrderHandler
	ServiceRecordHandler *handler.ServiceRecordHandler
	StatisticsHandler    *handler.StatisticsHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler          *handler.AuthHandler
	userHandler          *handler.UserHandler
	supplierHandler      *handler.SupplierHandler
	productHandler       *handler.ProductHandler
	orderHandler         *handler.OrderHandler
	serviceRecordHandler *handler.ServiceRecordHandler
	statisticsHandler    *handler.StatisticsHandler
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:          params.AuthHandler,
		userHandler:          params.UserHandler,
		supplierHandler:      params.SupplierHandler,
		productHandler:       params.ProductHandler,
		orderHandler:         params.OrderHandler,
		serviceRecordHandler: params.ServiceRecordHandler,
		statisticsHandler:    params.StatisticsHandler,
		authMiddleware:       params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Login and registration work without a session.
	api.POST("/users/login", r.authHandler.Login)
	api.POST("/users/register", r.userHandler.Register)

	// Everything else requires a live session cookie.
	authed := api.Group("", r.authMiddleware.Authenticate)

	authed.POST("/users/logout", r.authHandler.Logout)
	authed.GET("/users/me", r.authHandler.Me)

	// Account management. Password changes stay open to every session
	// because users change their own; the rest is admin only.
	userGroup := authed.Group("/users")
	{
		userGroup.PUT("/:id/password", r.userHandler.UpdatePassword)
	}
	adminUserGroup := userGroup.Group("", r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminUserGroup.GET("", r.userHandler.List)
		adminUserGroup.POST("", r.userHandler.Create)
		adminUserGroup.DELETE("/:id", r.userHandler.Delete)
	}

	// Suppliers: everyone reads, admins mutate.
	supplierGroup := authed.Group("/suppliers")
	{
		supplierGroup.GET("", r.supplierHandler.List)
		supplierGroup.GET("/:id", r.supplierHandler.Get)
	}
	adminSupplierGroup := supplierGroup.Group("", r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminSupplierGroup.POST("", r.supplierHandler.Create)
		adminSupplierGroup.PUT("/:id", r.supplierHandler.Update)
	}

	// Catalog. Per-role visibility and edit rules live in the use case.
	productGroup := authed.Group("/products")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.GET("/:id", r.productHandler.Get)
		productGroup.POST("", r.productHandler.Create)
		productGroup.PUT("/:id", r.productHandler.Update)
		productGroup.DELETE("/:id", r.productHandler.Delete)
	}

	// Orders.
	orderGroup := authed.Group("/orders")
	{
		orderGroup.GET("", r.orderHandler.List)
		orderGroup.POST("", r.orderHandler.Create)
		orderGroup.GET("/:id", r.orderHandler.Get)
		orderGroup.PUT("/:id/status", r.orderHandler.UpdateStatus)
		orderGroup.DELETE("/:id", r.orderHandler.Delete)
		orderGroup.GET("/:id/export", r.orderHandler.Export)
		orderGroup.GET("/:id/qrcode", r.orderHandler.QRCode)
	}

	// Service records.
	serviceGroup := authed.Group("/services")
	{
		serviceGroup.GET("", r.serviceRecordHandler.List)
		serviceGroup.POST("", r.serviceRecordHandler.Create)
		serviceGroup.GET("/:id", r.serviceRecordHandler.Get)
		serviceGroup.PUT("/:id", r.serviceRecordHandler.Update)
		serviceGroup.PUT("/:id/status", r.serviceRecordHandler.UpdateStatus)
		serviceGroup.DELETE("/:id", r.serviceRecordHandler.Delete)
	}

	// Settlement statistics.
	authed.GET("/statistics", r.statisticsHandler.Report)
}
