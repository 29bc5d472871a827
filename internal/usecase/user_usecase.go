package usecase

import (
	"context"
	"time"

	"bookkeep/internal/domain/entity"
)

// UserUsecase defines the interface for user management business operations.
type UserUsecase interface {
	// List returns every account. Admin only.
	List(ctx context.Context, actor entity.Principal) ([]*UserView, error)

	// Create adds an account with the given role. Admin only. Supplier
	// accounts must name an existing supplier, student accounts a group
	// user as manager.
	Create(ctx context.Context, actor entity.Principal, input *CreateUserInput) (*UserView, error)

	// UpdatePassword resets another account's password. Admin only.
	UpdatePassword(ctx context.Context, actor entity.Principal, userID uint, input *UpdatePasswordInput) (*UserView, error)

	// UpdateOwnPassword resets the caller's own password.
	UpdateOwnPassword(ctx context.Context, actor entity.Principal, input *UpdatePasswordInput) error

	// Delete removes an account. Admin only, never the caller's own.
	// Removing a supplier account soft-deletes that supplier's products.
	Delete(ctx context.Context, actor entity.Principal, userID uint) error

	// Register self-registers a student account under a named group user.
	// Available without a session when registration is enabled.
	Register(ctx context.Context, input *RegisterInput) (*UserView, error)
}

// --- Input DTOs ---

// CreateUserInput defines the data required to create an account.
type CreateUserInput struct {
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	Role       string  `json:"user_type"`
	SupplierID *uint   `json:"supplier_id,omitempty"`
	ManagerID  *uint   `json:"manager_id,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

// UpdatePasswordInput defines the data required to reset a password.
type UpdatePasswordInput struct {
	Password string `json:"password"`
}

// RegisterInput defines the data required for student self-registration.
type RegisterInput struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ManagerUsername string `json:"manager_username"`
}

// --- Output DTOs ---

// UserView is the account shape returned to clients. The password hash never
// leaves the use case layer.
type UserView struct {
	ID              uint      `json:"id"`
	Username        string    `json:"username"`
	Role            string    `json:"user_type"`
	SupplierID      *uint     `json:"supplier_id,omitempty"`
	ManagerID       *uint     `json:"manager_id,omitempty"`
	ManagerUsername string    `json:"manager_username,omitempty"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewUserView maps a user entity to its client shape.
func NewUserView(user *entity.User) *UserView {
	return &UserView{
		ID:         user.ID,
		Username:   user.Username,
		Role:       user.Role.String(),
		SupplierID: user.SupplierID,
		ManagerID:  user.ManagerID,
		Email:      user.Email,
		Phone:      user.Phone,
		CreatedAt:  user.CreatedAt,
	}
}
