package shop

// ==================== Error Messages ====================

// Formatted error messages for validation
const (
	ErrMsgMaterialRequiredFmt = "item material is required: %w"
	ErrMsgNegativePriceFmt    = "price %.2f must not be negative: %w"
	ErrMsgInvalidStockFmt     = "stock %d is below the unlimited sentinel: %w"
	ErrMsgCurrencyRequiredFmt = "currency is required: %w"
	ErrMsgNoPriceGivenFmt     = "no price given: %w"
	ErrMsgRestockModeFmt      = "exactly one of add or set must be given: %w"
	ErrMsgStockUnderflowFmt   = "cannot add %d to stock %d: %w"
	ErrMsgWrongShopFmt        = "listing %s is not in shop %s: %w"
)

// Database operation error messages
const (
	ErrMsgGetListingFailed        = "failed to get listing: %w"
	ErrMsgListListingsFailed      = "failed to list listings: %w"
	ErrMsgSaveListingFailed       = "failed to save listing: %w"
	ErrMsgDeleteListingFailed     = "failed to delete listing: %w"
	ErrMsgGetTradesFailed         = "failed to get trades: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgListingAdded       = "Listing added"
	LogMsgListingRemoved     = "Listing removed"
	LogMsgPricesUpdated      = "Listing prices updated"
	LogMsgCurrencyChanged    = "Listing currency changed"
	LogMsgListingRestocked   = "Listing restocked"
	LogMsgRestockIgnored     = "Restock ignored for unlimited listing"
	LogMsgPublishEventFailed = "Failed to publish listing event"
	LogMsgCacheHit           = "Listing served from cache"
)

// DefaultTradeHistoryLimit bounds ListTrades when the caller passes no limit
const DefaultTradeHistoryLimit = 50

// MaxTradeHistoryLimit caps ListTrades
const MaxTradeHistoryLimit = 500
