package entity

import "time"

// Supplier is a vendor the group purchases from. At most one supplier-role
// user references it as their login.
type Supplier struct {
	ID        uint
	Name      string
	CreatedAt time.Time
}
