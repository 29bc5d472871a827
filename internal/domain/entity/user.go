package entity

import "time"

// User represents a login account. Supplier accounts carry a back reference
// to the Supplier entity they act for; student accounts carry a back
// reference to the group user managing them. Both references are nullable.
type User struct {
	ID           uint
	Username     string
	Role         Role
	PasswordHash string
	SupplierID   *uint // set only for supplier-role users
	ManagerID    *uint // set only for student-role users, references a group user
	Email        string
	Phone        string
	CreatedAt    time.Time
}

// ActsForSupplier reports whether this user is the login of the given supplier.
func (u *User) ActsForSupplier(supplierID uint) bool {
	return u.Role == RoleSupplier && u.SupplierID != nil && *u.SupplierID == supplierID
}

// Principal is the authenticated identity attached to a request. It is the
// session-resolved projection of a User and carries everything the
// permission checks need.
type Principal struct {
	UserID   uint
	Username string
	Role     Role
}
