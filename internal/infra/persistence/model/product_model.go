package model

import (
	"time"
)

// ProductModel mirrors the 'products' table. Rows referenced by historical
// order items are never removed, only flagged via is_deleted.
type ProductModel struct {
	ID               uint    `gorm:"primaryKey"`
	Name             string  `gorm:"type:varchar(100);not null"`
	Brand            string  `gorm:"type:varchar(100)"`
	Model            string  `gorm:"type:varchar(100)"`
	Specification    string  `gorm:"type:varchar(255)"`
	InternalPrice    float64 `gorm:"type:numeric(12,2);not null"`
	TaxIncludedPrice float64 `gorm:"type:numeric(12,2);not null"`
	SupplierID       uint    `gorm:"not null;index"`
	IsDeleted        bool    `gorm:"not null;default:false;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
