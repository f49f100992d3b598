package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidPathParamFmt   = "Invalid %s"
	ErrMsgInvalidQueryParamFmt  = "Invalid %s query parameter"
	ErrMsgMissingQueryParamFmt  = "Missing %s query parameter"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgListingNotFound    = "Listing not found"
	ErrMsgShopNotFound       = "Shop not found"
	ErrMsgInvalidListing     = "Invalid listing"
	ErrMsgInvalidInput       = "Invalid request. Please check your inputs."
	ErrMsgOutOfStock         = "Not enough stock"
	ErrMsgNotEnoughMoney     = "Not enough money"
	ErrMsgWrongCurrency      = "Listing trades in a different currency"
	ErrMsgItemDoesNotMatch   = "Item does not match the listing"
	ErrMsgServiceUnavailable = "Service is temporarily unavailable"
)

// Log messages
const (
	LogMsgServiceCallFailed = "Service call failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
)
