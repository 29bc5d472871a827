package model

import (
	"time"
)

// OrderModel mirrors the 'orders' table. Line items live in their own table
// and are loaded together with the order.
type OrderModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	SupplierID uint   `gorm:"not null;index"`
	Status     string `gorm:"type:varchar(20);not null;default:'draft';index"`
	Version    uint   `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Product fields are
// snapshots taken at order creation; internal_price is nullable for items
// stored without one.
type OrderItemModel struct {
	ID               uint     `gorm:"primaryKey"`
	OrderID          uint     `gorm:"not null;index"`
	ProductID        uint     `gorm:"not null"`
	Name             string   `gorm:"type:varchar(100);not null"`
	Model            string   `gorm:"type:varchar(100)"`
	Specification    string   `gorm:"type:varchar(255)"`
	InternalPrice    *float64 `gorm:"type:numeric(12,2)"`
	TaxIncludedPrice float64  `gorm:"type:numeric(12,2);not null"`
	Quantity         int      `gorm:"not null"`
	Muted            bool     `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
