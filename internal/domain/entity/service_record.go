package entity

import "time"

// ServiceRecord tracks a service a supplier performed for a group user or
// student. UserID is the target who received the service, not the creator;
// records are always created by the supplier's login.
type ServiceRecord struct {
	ID         uint
	UserID     uint
	SupplierID uint
	Content    string
	Amount     float64
	Status     Status
	Version    uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccessibleBy reports whether the actor may read this record. Unlike order
// reads, a supplier sees its own drafts here; targets are kept from drafts
// at the listing level only.
func (s *ServiceRecord) AccessibleBy(actor *User, managedIDs []uint) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleGroupUser:
		return containsID(managedIDs, s.UserID)
	case RoleStudent:
		return s.UserID == actor.ID
	case RoleSupplier:
		return actor.ActsForSupplier(s.SupplierID)
	default:
		return false
	}
}
