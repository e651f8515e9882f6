package users

import "errors"

var (
	ErrUserNotFound     = errors.New("User not found")
	ErrEmailTaken       = errors.New("A user with this email already exists")
	ErrEmailRequired    = errors.New("A valid email is required")
	ErrFullNameRequired = errors.New("Full name is required")
	ErrInvalidRole      = errors.New("Role must be ADMIN or EDITOR")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters")
)
