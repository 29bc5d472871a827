// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bookkeep/internal/domain/entity"
)

// AuthUsecase defines the interface for login session business operations.
type AuthUsecase interface {
	// Login checks the credentials and mints a session on success. Wrong
	// credentials are not an error: they come back as a failed LoginOutput
	// so the HTTP layer can answer 200 with success=false.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Logout discards the session behind the token.
	Logout(ctx context.Context, token string) error

	// Me returns the freshly loaded account of the authenticated user.
	Me(ctx context.Context, actor entity.Principal) (*UserView, error)
}

// --- Input DTOs ---

// LoginInput defines the credentials for a login attempt.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Output DTOs ---

// LoginOutput is the outcome of a login attempt. Session is set only when
// Success is true.
type LoginOutput struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *UserView       `json:"user,omitempty"`
	Session *entity.Session `json:"-"`
}
