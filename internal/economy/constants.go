package economy

// ==================== Error Messages ====================

// Formatted error messages for validation
const (
	ErrMsgInvalidQuantityFmt    = "invalid quantity: %d: %w"
	ErrMsgQuantityExceedsMaxFmt = "quantity %d exceeds maximum allowed (%d): %w"
	ErrMsgPlayerRequiredFmt     = "player id is required: %w"
	ErrMsgCurrencyRequiredFmt   = "currency is required: %w"
	ErrMsgInvalidAmountFmt      = "invalid amount: %.2f: %w"
	ErrMsgWrongShopFmt          = "listing %s is not in shop %s: %w"
	ErrMsgCurrencyMismatchFmt   = "listing trades in %s, not %s: %w"
	ErrMsgInsufficientStockFmt  = "requested %d, only %d in stock: %w"
)

// Database operation error messages
const (
	ErrMsgGetListingFailed        = "failed to get listing: %w"
	ErrMsgGetBalanceFailed        = "failed to get balance: %w"
	ErrMsgAdjustBalanceFailed     = "failed to adjust balance: %w"
	ErrMsgSaveListingFailed       = "failed to save listing: %w"
	ErrMsgRecordTradeFailed       = "failed to record trade: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// Shutdown error messages
const (
	ErrMsgShutdownTimedOut = "shutdown timed out: %w"
)

// ==================== Log Messages ====================

// Service operation log messages
const (
	LogMsgBuyCalled           = "Buy called"
	LogMsgItemPurchased       = "Item purchased"
	LogMsgSellCalled          = "Sell called"
	LogMsgItemSold            = "Item sold"
	LogMsgDeposited           = "Balance deposited"
	LogMsgPublishTradeFailed  = "Failed to publish trade event"
	LogMsgEconomyShuttingDown = "Economy service shutting down, waiting for background tasks..."
)
