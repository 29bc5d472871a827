package usecase

import (
	"context"
	"time"

	"bookkeep/internal/domain/entity"
)

// SupplierUsecase defines the interface for supplier management business operations.
type SupplierUsecase interface {
	// List returns every supplier. Any authenticated user.
	List(ctx context.Context) ([]*SupplierView, error)

	// Get returns a single supplier.
	Get(ctx context.Context, id uint) (*SupplierView, error)

	// Create adds a supplier with a unique name. Admin only.
	Create(ctx context.Context, actor entity.Principal, input *SupplierInput) (*SupplierView, error)

	// Update renames a supplier. Admin only.
	Update(ctx context.Context, actor entity.Principal, id uint, input *SupplierInput) (*SupplierView, error)
}

// SupplierInput defines the data required to create or rename a supplier.
type SupplierInput struct {
	Name string `json:"name"`
}

// SupplierView is the supplier shape returned to clients.
type SupplierView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSupplierView maps a supplier entity to its client shape.
func NewSupplierView(s *entity.Supplier) *SupplierView {
	return &SupplierView{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
}
