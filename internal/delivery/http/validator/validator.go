// Package validator wraps go-playground/validator as an echo.Validator.
package validator

import (
	playgroundvalidator "github.com/go-playground/validator/v10"
)

// RequestValidator validates request structs by their validate tags.
type RequestValidator struct {
	validator *playgroundvalidator.Validate
}

// New creates a RequestValidator ready for echo.
func New() *RequestValidator {
	return &RequestValidator{
		validator: playgroundvalidator.New(playgroundvalidator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validator.Struct(i)
}
