package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail          = errors.New("Invalid email")
	ErrIncorrectPassword     = errors.New("Incorrect password")
	ErrAccountDisabled       = errors.New("Account is disabled")
	ErrNotAuthenticated      = errors.New("Not authenticated")
	ErrInvalidResetToken     = errors.New("Invalid or expired reset token")
	ErrPasswordTooShort      = errors.New("Password must be at least 8 characters")
)
