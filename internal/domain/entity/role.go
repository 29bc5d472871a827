// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin indicates an administrator with full override rights.
	RoleAdmin Role = "admin"
	// RoleGroupUser indicates a research-group (PI) account that manages students.
	RoleGroupUser Role = "group_user"
	// RoleSupplier indicates a vendor login linked to a Supplier entity.
	RoleSupplier Role = "supplier"
	// RoleStudent indicates an account managed by a group user.
	RoleStudent Role = "student"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleGroupUser, RoleSupplier, RoleStudent:
		return true
	default:
		return false
	}
}

// CanViewInternalPrice reports whether the role may see procurement-side
// internal prices. Supplier and student accounts must never receive them.
func (r Role) CanViewInternalPrice() bool {
	return r == RoleAdmin || r == RoleGroupUser
}

// CanViewStatistics reports whether the role may query the statistics report.
func (r Role) CanViewStatistics() bool {
	return r == RoleAdmin || r == RoleGroupUser
}

// ValidRoles lists every assignable role, used for validation messages.
func ValidRoles() []Role {
	return []Role{RoleAdmin, RoleGroupUser, RoleSupplier, RoleStudent}
}
