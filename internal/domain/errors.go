package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Listing errors
	ErrMsgListingNotFound = "listing not found"
	ErrMsgShopNotFound    = "shop not found"
	ErrMsgInvalidListing  = "invalid listing"

	// Stock errors
	ErrMsgInsufficientStock = "insufficient stock"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgCurrencyMismatch  = "currency mismatch"
	ErrMsgItemMismatch      = "item does not match listing"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	ErrShopNotFound    = errors.New(ErrMsgShopNotFound)
	ErrInvalidListing  = errors.New(ErrMsgInvalidListing)

	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrCurrencyMismatch  = errors.New(ErrMsgCurrencyMismatch)
	ErrItemMismatch      = errors.New(ErrMsgItemMismatch)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
