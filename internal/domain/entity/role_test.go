package entity

import "testing"

func TestRoleIsValid(t *testing.T) {
	t.Parallel()

	for _, role := range ValidRoles() {
		if !role.IsValid() {
			t.Fatalf("role %q should be valid", role)
		}
	}

	for _, invalid := range []Role{"", "manager", "ADMIN", "普通用户"} {
		if invalid.IsValid() {
			t.Fatalf("role %q should be invalid", invalid)
		}
	}
}

func TestCanViewInternalPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role Role
		want bool
	}{
		{role: RoleAdmin, want: true},
		{role: RoleGroupUser, want: true},
		{role: RoleSupplier, want: false},
		{role: RoleStudent, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			t.Parallel()

			if got := tt.role.CanViewInternalPrice(); got != tt.want {
				t.Fatalf("CanViewInternalPrice(%s) = %v, want %v", tt.role, got, tt.want)
			}
			if got := tt.role.CanViewStatistics(); got != tt.want {
				t.Fatalf("CanViewStatistics(%s) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, status := range ValidStatuses() {
		if !status.IsValid() {
			t.Fatalf("status %q should be valid", status)
		}
	}

	for _, invalid := range []Status{"", "pending", "Draft", "暂存"} {
		if invalid.IsValid() {
			t.Fatalf("status %q should be invalid", invalid)
		}
	}
}
