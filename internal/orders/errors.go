package orders

import "errors"

var (
	ErrNoItems         = errors.New("Order must contain at least one item")
	ErrNameRequired    = errors.New("Customer name is required")
	ErrInvalidEmail    = errors.New("A valid customer email is required")
	ErrInvalidQuantity = errors.New("Item quantity must be a positive integer")
	ErrProductNotFound = errors.New("Product not found")
	ErrOrderNotFound   = errors.New("Order not found")
	ErrInvalidStatus   = errors.New("Unknown order status")
)
