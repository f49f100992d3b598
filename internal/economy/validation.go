package economy

import (
	"fmt"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
)

// validateQuantity validates the transaction quantity
func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf(ErrMsgInvalidQuantityFmt, quantity, domain.ErrInvalidInput)
	}
	if quantity > domain.MaxTransactionQuantity {
		return fmt.Errorf(ErrMsgQuantityExceedsMaxFmt, quantity, domain.MaxTransactionQuantity, domain.ErrInvalidInput)
	}
	return nil
}

func validateTradeRequest(req TradeRequest) error {
	if req.PlayerID == "" {
		return fmt.Errorf(ErrMsgPlayerRequiredFmt, domain.ErrInvalidInput)
	}
	return validateQuantity(req.Quantity)
}

// checkListing confirms the locked listing belongs to the shop and trades in the expected currency
func checkListing(listing *domain.ShopListing, req TradeRequest) error {
	if owner := listing.ShopID(); !owner.Valid || owner.UUID != req.ShopID {
		return fmt.Errorf(ErrMsgWrongShopFmt, listing.ID(), req.ShopID, domain.ErrListingNotFound)
	}
	if req.Currency != "" && req.Currency != listing.Currency() {
		return fmt.Errorf(ErrMsgCurrencyMismatchFmt, listing.Currency(), req.Currency, domain.ErrCurrencyMismatch)
	}
	return nil
}
