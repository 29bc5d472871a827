package service

import (
	"context"

	"bookkeep/internal/domain/entity"
)

// OrderNotification carries everything needed to tell a user about an order
// status change.
type OrderNotification struct {
	ToEmail      string
	ToName       string
	OrderID      uint
	Status       entity.Status
	SupplierName string
	ItemsSummary string
}

// ServiceNotification carries everything needed to tell a user about a
// service record status change.
type ServiceNotification struct {
	ToEmail      string
	ToName       string
	ServiceID    uint
	Status       entity.Status
	SupplierName string
	Content      string
	Amount       float64
}

// Notifier delivers status change messages to users. Implementations are
// best-effort; callers must not let a delivery failure roll back the change
// that triggered it.
type Notifier interface {
	// SendOrderNotification delivers an order status change message.
	SendOrderNotification(ctx context.Context, n OrderNotification) error

	// SendServiceNotification delivers a service record status change message.
	SendServiceNotification(ctx context.Context, n ServiceNotification) error
}
