package repository

import (
	"context"
	"errors"
	"time"

	"bookkeep/internal/domain/entity"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// ErrVersionMismatch is returned by versioned updates when the stored row no
// longer carries the expected version, meaning a concurrent writer got there
// first.
var ErrVersionMismatch = errors.New("version mismatch")

// OrderFilter narrows and pages order listings. Zero-value fields are
// ignored. UserIDs scopes results to the given owners; nil means no owner
// scoping.
type OrderFilter struct {
	UserIDs       []uint
	SupplierID    *uint
	Status        *entity.Status
	ExcludeStatus *entity.Status
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Page          int
	PageSize      int
}

// OrderRepository defines the standard operations for order persistence.
// Orders are always loaded and stored together with their line items.
type OrderRepository interface {
	// FindByID retrieves a single order with its line items.
	FindByID(ctx context.Context, id uint) (*entity.Order, error)

	// List retrieves orders matching the filter together with the total
	// match count before pagination, ordered by creation time descending.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)

	// ListConfirmed retrieves every confirmed order, scoped to the given
	// owners when userIDs is non-nil. Used by the statistics aggregation.
	ListConfirmed(ctx context.Context, userIDs []uint) ([]*entity.Order, error)

	// Create persists a new order and its line items, assigning IDs.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus moves an order to the given status if the stored version
	// still matches. Returns ErrVersionMismatch when it does not.
	UpdateStatus(ctx context.Context, id uint, version uint, status entity.Status) error

	// Delete removes an order and its line items from the storage.
	Delete(ctx context.Context, id uint) error
}
