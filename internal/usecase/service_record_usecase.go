package usecase

import (
	"context"
	"time"

	"bookkeep/internal/domain/entity"
)

// ServiceRecordUsecase defines the interface for service record lifecycle business operations.
type ServiceRecordUsecase interface {
	// Create opens a draft record. Only supplier users, only under their own
	// supplier, and the named target user must exist and not be a supplier.
	Create(ctx context.Context, actor entity.Principal, input *CreateServiceInput) (*ServiceRecordView, error)

	// Get returns one service record.
	Get(ctx context.Context, actor entity.Principal, id uint) (*ServiceRecordView, error)

	// List returns the record page visible to the actor. Group users and
	// students never see drafts.
	List(ctx context.Context, actor entity.Principal, input *ListServicesInput) (*ServiceRecordPage, error)

	// Update rewrites content and amount of an own draft. Supplier only.
	Update(ctx context.Context, actor entity.Principal, id uint, input *UpdateServiceInput) (*ServiceRecordView, error)

	// UpdateStatus moves a record through its lifecycle, enforcing the per
	// role transition rules, and notifies the counterparty after commit.
	UpdateStatus(ctx context.Context, actor entity.Principal, id uint, input *UpdateStatusInput) error

	// Delete removes a draft or submitted record outright and turns a
	// confirmed one invalid. Invalid records reject deletion except for
	// admins.
	Delete(ctx context.Context, actor entity.Principal, id uint) (*DeleteOutcome, error)
}

// --- Input DTOs ---

// CreateServiceInput defines the data required to open a service record.
type CreateServiceInput struct {
	SupplierID   uint    `json:"supplier_id"`
	Content      string  `json:"content"`
	Amount       float64 `json:"amount"`
	UserUsername string  `json:"user_username"`
}

// UpdateServiceInput defines the editable record fields. Nil means keep.
type UpdateServiceInput struct {
	Content *string  `json:"content,omitempty"`
	Amount  *float64 `json:"amount,omitempty"`
}

// ListServicesInput defines the service record list filters.
type ListServicesInput struct {
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

// --- Output DTOs ---

// ServiceRecordView is the record shape returned to clients.
type ServiceRecordView struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	SupplierID   uint      `json:"supplier_id"`
	SupplierName string    `json:"supplier_name,omitempty"`
	Content      string    `json:"content"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	Version      uint      `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
}

// ServiceRecordPage is one page of service record results.
type ServiceRecordPage struct {
	Total    int64                `json:"total"`
	Items    []*ServiceRecordView `json:"items"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// NewServiceRecordView maps a record entity to its client shape.
func NewServiceRecordView(rec *entity.ServiceRecord, username, supplierName string) *ServiceRecordView {
	return &ServiceRecordView{
		ID:           rec.ID,
		UserID:       rec.UserID,
		Username:     username,
		SupplierID:   rec.SupplierID,
		SupplierName: supplierName,
		Content:      rec.Content,
		Amount:       rec.Amount,
		Status:       rec.Status.String(),
		Version:      rec.Version,
		CreatedAt:    rec.CreatedAt,
	}
}
