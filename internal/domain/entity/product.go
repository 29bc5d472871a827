package entity

import "time"

// Product is a catalog entry owned by a supplier. Products referenced by
// historical orders are never physically removed, only flagged deleted.
type Product struct {
	ID               uint
	Name             string
	Brand            string
	Model            string
	Specification    string
	InternalPrice    float64
	TaxIncludedPrice float64
	SupplierID       uint
	IsDeleted        bool
	CreatedAt        time.Time
}
