package repository

import (
	"context"
	"errors"

	"bookkeep/internal/domain/entity"
)

// ErrSupplierNotFound is a domain-specific error returned when a supplier is not found.
var ErrSupplierNotFound = errors.New("supplier not found")

// SupplierRepository defines the standard operations for supplier persistence.
type SupplierRepository interface {
	// FindByID retrieves a single supplier by its unique ID.
	FindByID(ctx context.Context, id uint) (*entity.Supplier, error)

	// FindByName retrieves a single supplier by its unique name.
	FindByName(ctx context.Context, name string) (*entity.Supplier, error)

	// ListAll retrieves every supplier, ordered by ID.
	ListAll(ctx context.Context) ([]*entity.Supplier, error)

	// Create persists a new supplier entity to the storage.
	Create(ctx context.Context, supplier *entity.Supplier) error

	// Update modifies an existing supplier entity in the storage.
	Update(ctx context.Context, supplier *entity.Supplier) error
}
