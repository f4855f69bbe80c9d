package orders

import "errors"

var (
	ErrNotFound = errors.New("order not found")

	// ErrEmptyOrder and ErrInvalidQuantity reject a request before any
	// storage call is made.
	ErrEmptyOrder      = errors.New("order has no line items")
	ErrInvalidQuantity = errors.New("line item quantity must be positive")

	// ErrBadReference: the order insert hit a foreign key on user or
	// address, meaning the referenced row does not exist.
	ErrBadReference = errors.New("unknown user or address")
)
