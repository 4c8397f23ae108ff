package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuantity rejects cart additions with a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrEmptyCart rejects checkout on a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnauthenticated rejects operations that require a logged-in session.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrNotCancellable rejects cancellation of orders past processing.
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)
