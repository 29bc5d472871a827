package repository

import (
	"context"
	"errors"
	"time"

	"bookkeep/internal/domain/entity"
)

// ErrServiceRecordNotFound is a domain-specific error returned when a service record is not found.
var ErrServiceRecordNotFound = errors.New("service record not found")

// ServiceRecordFilter narrows and pages service record listings. Zero-value
// fields are ignored. UserIDs scopes results to the given target users; nil
// means no scoping. Content matches by containment.
type ServiceRecordFilter struct {
	UserIDs       []uint
	SupplierID    *uint
	Status        *entity.Status
	ExcludeStatus *entity.Status
	Content       string
	MinAmount     *float64
	MaxAmount     *float64
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Page          int
	PageSize      int
}

// ServiceRecordRepository defines the standard operations for service record persistence.
type ServiceRecordRepository interface {
	// FindByID retrieves a single service record by its unique ID.
	FindByID(ctx context.Context, id uint) (*entity.ServiceRecord, error)

	// List retrieves service records matching the filter together with the
	// total match count before pagination, ordered by creation time
	// descending.
	List(ctx context.Context, filter ServiceRecordFilter) ([]*entity.ServiceRecord, int64, error)

	// ListConfirmed retrieves every confirmed service record, scoped to the
	// given target users when userIDs is non-nil. Used by the statistics
	// aggregation.
	ListConfirmed(ctx context.Context, userIDs []uint) ([]*entity.ServiceRecord, error)

	// Create persists a new service record entity to the storage.
	Create(ctx context.Context, record *entity.ServiceRecord) error

	// Update rewrites content and amount if the stored version still matches
	// the record's version. Returns ErrVersionMismatch when it does not.
	Update(ctx context.Context, record *entity.ServiceRecord) error

	// UpdateStatus moves a record to the given status if the stored version
	// still matches. Returns ErrVersionMismatch when it does not.
	UpdateStatus(ctx context.Context, id uint, version uint, status entity.Status) error

	// Delete removes a service record from the storage.
	Delete(ctx context.Context, id uint) error
}
