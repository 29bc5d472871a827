package usecase

import (
	"context"
	"time"

	"bookkeep/internal/domain/entity"
)

// OrderUsecase defines the interface for order lifecycle business operations.
type OrderUsecase interface {
	// Create opens a draft order for the named supplier, snapshotting the
	// line item prices. Suppliers cannot create orders.
	Create(ctx context.Context, actor entity.Principal, input *CreateOrderInput) (*OrderView, error)

	// Get returns one order with items and totals shaped per role.
	Get(ctx context.Context, actor entity.Principal, id uint) (*OrderView, error)

	// List returns the order page visible to the actor.
	List(ctx context.Context, actor entity.Principal, input *ListOrdersInput) (*OrderPage, error)

	// UpdateStatus moves an order through its lifecycle, enforcing the per
	// role transition rules, and notifies the counterparty after commit.
	UpdateStatus(ctx context.Context, actor entity.Principal, id uint, input *UpdateStatusInput) error

	// Delete removes a draft or submitted order outright and turns a
	// confirmed one invalid. Invalid orders reject deletion.
	Delete(ctx context.Context, actor entity.Principal, id uint) (*DeleteOutcome, error)

	// Export renders one order as a CSV attachment, internal prices shaped
	// per role.
	Export(ctx context.Context, actor entity.Principal, id uint) (*OrderExport, error)

	// QRCode renders a PNG QR code linking to the order detail page.
	QRCode(ctx context.Context, actor entity.Principal, id uint) ([]byte, error)
}

// --- Input DTOs ---

// OrderItemInput is one requested line item. InternalPrice left nil is
// snapshotted from the product at creation time.
type OrderItemInput struct {
	ProductID        uint     `json:"product_id"`
	Name             string   `json:"name"`
	Model            string   `json:"model,omitempty"`
	Specification    string   `json:"specification,omitempty"`
	InternalPrice    *float64 `json:"internal_price,omitempty"`
	TaxIncludedPrice float64  `json:"tax_included_price"`
	Quantity         int      `json:"quantity"`
	Muted            bool     `json:"muted"`
}

// CreateOrderInput defines the data required to open an order.
type CreateOrderInput struct {
	SupplierID uint             `json:"supplier_id"`
	Items      []OrderItemInput `json:"items"`
}

// ListOrdersInput defines the order list filters. Content matches against
// the line item fields, amount bounds against the tax-included total.
type ListOrdersInput struct {
	SupplierID *uint
	Status     *string
	Content    string
	MinAmount  *float64
	MaxAmount  *float64
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	PageSize   int
}

// UpdateStatusInput names the requested target status. Version, when
// provided, must match the stored record or the change is rejected.
type UpdateStatusInput struct {
	Status  string `json:"status"`
	Version *uint  `json:"version,omitempty"`
}

// --- Output DTOs ---

// OrderItemView is one line item as returned to clients.
type OrderItemView struct {
	ProductID        uint     `json:"product_id"`
	Name             string   `json:"name"`
	Model            string   `json:"model,omitempty"`
	Specification    string   `json:"specification,omitempty"`
	InternalPrice    *float64 `json:"internal_price"`
	TaxIncludedPrice float64  `json:"tax_included_price"`
	Quantity         int      `json:"quantity"`
	Muted            bool     `json:"muted"`
}

// OrderView is the order shape returned to clients. Totals are only set on
// detail reads, and the internal total only for roles that may see it.
type OrderView struct {
	ID                    uint            `json:"id"`
	UserID                uint            `json:"user_id"`
	Username              string          `json:"username,omitempty"`
	SupplierID            uint            `json:"supplier_id"`
	SupplierName          string          `json:"supplier_name,omitempty"`
	Items                 []OrderItemView `json:"items"`
	Status                string          `json:"status"`
	Version               uint            `json:"version"`
	CreatedAt             time.Time       `json:"created_at"`
	TotalInternalPrice    *float64        `json:"total_internal_price,omitempty"`
	TotalTaxIncludedPrice *float64        `json:"total_tax_included_price,omitempty"`
}

// OrderPage is one page of order results.
type OrderPage struct {
	Total    int64        `json:"total"`
	Items    []*OrderView `json:"items"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// OrderExport is a rendered order file ready to send as an attachment.
type OrderExport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DeleteOutcome reports how a deletion request was resolved, since a
// confirmed record is invalidated rather than removed.
type DeleteOutcome struct {
	Invalidated bool
	Message     string
}

// NewOrderItemViews maps line items to their client shape, dropping internal
// prices unless the role may see them.
func NewOrderItemViews(items []entity.OrderItem, includeInternal bool) []OrderItemView {
	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		view := OrderItemView{
			ProductID:        item.ProductID,
			Name:             item.Name,
			Model:            item.Model,
			Specification:    item.Specification,
			TaxIncludedPrice: item.TaxIncludedPrice,
			Quantity:         item.Quantity,
			Muted:            item.Muted,
		}
		if includeInternal && item.InternalPrice != nil {
			price := *item.InternalPrice
			view.InternalPrice = &price
		}
		views = append(views, view)
	}

	return views
}
