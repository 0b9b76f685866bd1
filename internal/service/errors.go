package service

import "errors"

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404

	// ErrProductUnavailable rejects adding a reserved, hidden or deleted
	// product to a cart. The cart is left unchanged.
	ErrProductUnavailable = errors.New("product unavailable")

	// ErrEmptyCart rejects a checkout with no lines. No side effects.
	ErrEmptyCart = errors.New("empty cart")

	// ErrProductNoLongerAvailable aborts a whole checkout when a product was
	// taken between snapshot and commit. Cart and catalog are rolled back to
	// their pre-checkout state.
	ErrProductNoLongerAvailable = errors.New("product no longer available")
)
