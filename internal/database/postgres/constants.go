package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeCheckViolation is raised when player_balances.balance would drop below zero
	PgErrorCodeCheckViolation = "23514"
)

// Error Messages
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToMarshalItem      = "failed to marshal item"
	ErrMsgFailedToUnmarshalItem    = "failed to unmarshal item"
	ErrMsgFailedToSaveListing      = "failed to save listing"
	ErrMsgFailedToGetListing       = "failed to get listing"
	ErrMsgFailedToListListings     = "failed to list listings"
	ErrMsgFailedToDeleteListing    = "failed to delete listing"
	ErrMsgFailedToGetBalance       = "failed to get balance"
	ErrMsgFailedToAdjustBalance    = "failed to adjust balance"
	ErrMsgFailedToRecordTrade      = "failed to record trade"
	ErrMsgFailedToGetTrades        = "failed to get trades"
)
