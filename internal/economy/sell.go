package economy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
)

// Sell buys units from a player: finite stock goes up, the player is credited the
// sell price and the bought counter goes up. When req.Item is set it must match the listing.
func (s *service) Sell(ctx context.Context, req TradeRequest) (*TradeResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSellCalled, "player_id", req.PlayerID, "listing_id", req.ListingID, "quantity", req.Quantity)

	if err := validateTradeRequest(req); err != nil {
		return nil, err
	}

	tx, listing, release, err := s.lockListing(ctx, req)
	if err != nil {
		return nil, err
	}
	defer release()

	if req.Item != nil && !listing.Matches(req.Item) {
		return nil, domain.ErrItemMismatch
	}

	// Unlimited listings absorb sold items without tracking them
	listing.TryAddStock(req.Quantity)

	earned := listing.CalculateSellPrice(req.Quantity)
	balance, err := tx.AdjustBalance(ctx, req.PlayerID, listing.Currency(), earned)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgAdjustBalanceFailed, err)
	}

	listing.IncrementBoughtCount(req.Quantity)

	trade := &domain.Trade{
		ID:        uuid.New(),
		ListingID: listing.ID(),
		ShopID:    listing.ShopID(),
		PlayerID:  req.PlayerID,
		Direction: domain.TradeSell,
		Quantity:  req.Quantity,
		Total:     earned,
		Currency:  listing.Currency(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.finishTrade(ctx, tx, listing, trade); err != nil {
		return nil, err
	}

	log.Info(LogMsgItemSold,
		"player_id", req.PlayerID,
		"material", listing.Item().Material,
		"quantity", req.Quantity,
		"earned", earned,
		"currency", listing.Currency())

	return &TradeResult{Trade: *trade, Balance: balance, Stock: listing.Stock()}, nil
}
