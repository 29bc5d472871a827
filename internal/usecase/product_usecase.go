package usecase

import (
	"context"
	"time"

	"bookkeep/internal/domain/entity"
)

// ProductUsecase defines the interface for catalog business operations.
type ProductUsecase interface {
	// List returns the catalog page visible to the actor. Suppliers only
	// ever see their own products.
	List(ctx context.Context, actor entity.Principal, input *ListProductsInput) (*ProductPage, error)

	// Get returns a single product, internal price shaped per role.
	Get(ctx context.Context, actor entity.Principal, id uint) (*ProductView, error)

	// Create adds a product. Admin anywhere, suppliers under their own
	// supplier only, with the internal price pinned to the tax-included one.
	Create(ctx context.Context, actor entity.Principal, input *CreateProductInput) (*ProductView, error)

	// Update edits a product. Admin edits any field, the owning supplier
	// any field except the internal price.
	Update(ctx context.Context, actor entity.Principal, id uint, input *UpdateProductInput) (*ProductView, error)

	// Delete soft-deletes a product. Admin or the owning supplier.
	Delete(ctx context.Context, actor entity.Principal, id uint) error
}

// --- Input DTOs ---

// ListProductsInput defines the catalog filters. Price bounds apply to the
// tax-included price; name and model match by containment.
type ListProductsInput struct {
	SupplierID *uint
	Name       string
	Model      string
	MinPrice   *float64
	MaxPrice   *float64
	Page       int
	PageSize   int
}

// CreateProductInput defines the data required to add a product.
type CreateProductInput struct {
	Name             string   `json:"name"`
	Brand            string   `json:"brand,omitempty"`
	Model            string   `json:"model,omitempty"`
	Specification    string   `json:"specification,omitempty"`
	InternalPrice    *float64 `json:"internal_price,omitempty"`
	TaxIncludedPrice float64  `json:"tax_included_price"`
	SupplierID       uint     `json:"supplier_id"`
}

// UpdateProductInput defines the editable product fields. Nil means keep.
type UpdateProductInput struct {
	Name             *string  `json:"name,omitempty"`
	Brand            *string  `json:"brand,omitempty"`
	Model            *string  `json:"model,omitempty"`
	Specification    *string  `json:"specification,omitempty"`
	InternalPrice    *float64 `json:"internal_price,omitempty"`
	TaxIncludedPrice *float64 `json:"tax_included_price,omitempty"`
}

// --- Output DTOs ---

// ProductView is the product shape returned to clients. InternalPrice is nil
// for roles that may not see it.
type ProductView struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Brand            string    `json:"brand,omitempty"`
	Model            string    `json:"model,omitempty"`
	Specification    string    `json:"specification,omitempty"`
	InternalPrice    *float64  `json:"internal_price"`
	TaxIncludedPrice float64   `json:"tax_included_price"`
	SupplierID       uint      `json:"supplier_id"`
	SupplierName     string    `json:"supplier_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Total    int64          `json:"total"`
	Items    []*ProductView `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// NewProductView maps a product entity to its client shape, dropping the
// internal price unless the role may see it.
func NewProductView(p *entity.Product, supplierName string, includeInternal bool) *ProductView {
	view := &ProductView{
		ID:               p.ID,
		Name:             p.Name,
		Brand:            p.Brand,
		Model:            p.Model,
		Specification:    p.Specification,
		TaxIncludedPrice: p.TaxIncludedPrice,
		SupplierID:       p.SupplierID,
		SupplierName:     supplierName,
		CreatedAt:        p.CreatedAt,
	}
	if includeInternal {
		price := p.InternalPrice
		view.InternalPrice = &price
	}

	return view
}
