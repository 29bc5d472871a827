package model

import (
	"time"
)

// ServiceRecordModel mirrors the 'service_records' table. UserID is the
// target who received the service, not the creating supplier login.
type ServiceRecordModel struct {
	ID         uint    `gorm:"primaryKey"`
	UserID     uint    `gorm:"not null;index"`
	SupplierID uint    `gorm:"not null;index"`
	Content    string  `gorm:"type:text;not null"`
	Amount     float64 `gorm:"type:numeric(12,2);not null"`
	Status     string  `gorm:"type:varchar(20);not null;default:'draft';index"`
	Version    uint    `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ServiceRecordModel) TableName() string {
	return "service_records"
}
