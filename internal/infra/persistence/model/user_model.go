package model

import (
	"time"
)

// UserModel mirrors the 'users' table. IDs are plain serial integers; the
// role column decides which of the two nullable back references is set.
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(50);unique;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;index"`
	SupplierID   *uint  `gorm:"index"`
	ManagerID    *uint  `gorm:"index"`
	Email        string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(50)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
