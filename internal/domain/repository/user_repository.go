// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bookkeep/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByUsername retrieves a single user by their unique username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindBySupplierID retrieves the user account linked to the given supplier,
	// if one exists.
	FindBySupplierID(ctx context.Context, supplierID uint) (*entity.User, error)

	// ListAll retrieves every user, ordered by ID.
	ListAll(ctx context.Context) ([]*entity.User, error)

	// ListManagedIDs returns the IDs of all users whose manager is the given user.
	ListManagedIDs(ctx context.Context, managerID uint) ([]uint, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdatePassword replaces the stored password hash for the given user.
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error

	// Delete removes a user from the storage.
	Delete(ctx context.Context, id uint) error
}
