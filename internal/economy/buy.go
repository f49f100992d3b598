package economy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
)

// Buy sells units of a listing to a player: stock goes down, the player's balance
// is charged the buy price and the sold counter goes up.
func (s *service) Buy(ctx context.Context, req TradeRequest) (*TradeResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgBuyCalled, "player_id", req.PlayerID, "listing_id", req.ListingID, "quantity", req.Quantity)

	if err := validateTradeRequest(req); err != nil {
		return nil, err
	}

	tx, listing, release, err := s.lockListing(ctx, req)
	if err != nil {
		return nil, err
	}
	defer release()

	if res := listing.TryRemoveStock(req.Quantity); res.Insufficient() {
		return nil, fmt.Errorf(ErrMsgInsufficientStockFmt, req.Quantity, res.Stock, domain.ErrInsufficientStock)
	}

	cost := listing.CalculateBuyPrice(req.Quantity)
	balance, err := tx.AdjustBalance(ctx, req.PlayerID, listing.Currency(), -cost)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgAdjustBalanceFailed, err)
	}

	listing.IncrementSoldCount(req.Quantity)

	trade := &domain.Trade{
		ID:        uuid.New(),
		ListingID: listing.ID(),
		ShopID:    listing.ShopID(),
		PlayerID:  req.PlayerID,
		Direction: domain.TradeBuy,
		Quantity:  req.Quantity,
		Total:     cost,
		Currency:  listing.Currency(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.finishTrade(ctx, tx, listing, trade); err != nil {
		return nil, err
	}

	log.Info(LogMsgItemPurchased,
		"player_id", req.PlayerID,
		"material", listing.Item().Material,
		"quantity", req.Quantity,
		"cost", cost,
		"currency", listing.Currency())

	return &TradeResult{Trade: *trade, Balance: balance, Stock: listing.Stock()}, nil
}
