package repository

import (
	"context"
	"errors"

	"bookkeep/internal/domain/entity"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows and pages product listings. Zero-value fields are
// ignored. Price bounds apply to the tax-included price.
type ProductFilter struct {
	SupplierID *uint
	Name       string
	Model      string
	MinPrice   *float64
	MaxPrice   *float64
	Page       int
	PageSize   int
}

// ProductRepository defines the standard operations for product persistence.
// Soft-deleted products are invisible to every read method.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uint) (*entity.Product, error)

	// FindBySupplier retrieves a product by ID scoped to the given supplier.
	FindBySupplier(ctx context.Context, id uint, supplierID uint) (*entity.Product, error)

	// List retrieves products matching the filter together with the total
	// match count before pagination, ordered by creation time descending.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity in the storage.
	Update(ctx context.Context, product *entity.Product) error

	// SoftDelete marks a product as deleted without removing the row.
	SoftDelete(ctx context.Context, id uint) error

	// SoftDeleteBySupplier marks every product of the given supplier as
	// deleted. Used when a supplier user account is removed.
	SoftDeleteBySupplier(ctx context.Context, supplierID uint) error
}
