package economy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/FrizzlenShop_Go/internal/cache"
	"github.com/osse101/FrizzlenShop_Go/internal/concurrency"
	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/event"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
	"github.com/osse101/FrizzlenShop_Go/internal/repository"
)

// TradeRequest is a buy or sell against one listing. Currency, when set, must
// match the listing. Item is only checked on sells.
type TradeRequest struct {
	ShopID    uuid.UUID              `json:"shop_id"`
	ListingID uuid.UUID              `json:"listing_id"`
	PlayerID  string                 `json:"player_id"`
	Quantity  int                    `json:"quantity"`
	Currency  string                 `json:"currency,omitempty"`
	Item      *domain.ItemDescriptor `json:"item,omitempty"`
}

// TradeResult contains the result of a buy or sell
type TradeResult struct {
	Trade   domain.Trade `json:"trade"`
	Balance float64      `json:"balance"`
	Stock   int          `json:"stock"`
}

// Quote prices a trade without executing it
type Quote struct {
	ListingID uuid.UUID `json:"listing_id"`
	Direction string    `json:"direction"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Total     float64   `json:"total"`
	Currency  string    `json:"currency"`
	InStock   bool      `json:"in_stock"`
}

// ListingReader resolves a listing of a shop, typically through the listing cache
type ListingReader interface {
	GetListing(ctx context.Context, shopID, listingID uuid.UUID) (*domain.ShopListing, error)
}

// Service defines the interface for economy operations
type Service interface {
	Buy(ctx context.Context, req TradeRequest) (*TradeResult, error)
	Sell(ctx context.Context, req TradeRequest) (*TradeResult, error)
	Quote(ctx context.Context, shopID, listingID uuid.UUID, direction string, quantity int) (*Quote, error)
	GetBalance(ctx context.Context, playerID, currency string) (float64, error)
	Deposit(ctx context.Context, playerID, currency string, amount float64) (float64, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	repo     repository.Listing
	listings ListingReader
	cache    cache.Cache
	locks    *concurrency.LockManager
	bus      event.Bus
	wg       sync.WaitGroup
}

// NewService creates a new economy service
func NewService(repo repository.Listing, listings ListingReader, c cache.Cache, locks *concurrency.LockManager, bus event.Bus) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:     repo,
		listings: listings,
		cache:    c,
		locks:    locks,
		bus:      bus,
	}
}

func (s *service) Quote(ctx context.Context, shopID, listingID uuid.UUID, direction string, quantity int) (*Quote, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	listing, err := s.listings.GetListing(ctx, shopID, listingID)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		ListingID: listing.ID(),
		Direction: direction,
		Quantity:  quantity,
		Currency:  listing.Currency(),
		InStock:   true,
	}
	switch direction {
	case domain.TradeBuy:
		q.UnitPrice = listing.BuyPrice()
		q.Total = listing.CalculateBuyPrice(quantity)
		q.InStock = listing.HasStock(quantity)
	case domain.TradeSell:
		q.UnitPrice = listing.SellPrice()
		q.Total = listing.CalculateSellPrice(quantity)
	default:
		return nil, fmt.Errorf("unknown trade direction %q: %w", direction, domain.ErrInvalidInput)
	}
	return q, nil
}

func (s *service) GetBalance(ctx context.Context, playerID, currency string) (float64, error) {
	if playerID == "" {
		return 0, fmt.Errorf(ErrMsgPlayerRequiredFmt, domain.ErrInvalidInput)
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	balance, err := s.repo.GetBalance(ctx, playerID, currency)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetBalanceFailed, err)
	}
	return balance, nil
}

// Deposit credits a player's balance, e.g. from an admin grant or an external payout
func (s *service) Deposit(ctx context.Context, playerID, currency string, amount float64) (float64, error) {
	if playerID == "" {
		return 0, fmt.Errorf(ErrMsgPlayerRequiredFmt, domain.ErrInvalidInput)
	}
	if currency == "" {
		return 0, fmt.Errorf(ErrMsgCurrencyRequiredFmt, domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return 0, fmt.Errorf(ErrMsgInvalidAmountFmt, amount, domain.ErrInvalidInput)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := tx.AdjustBalance(ctx, playerID, currency, amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgAdjustBalanceFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgDeposited, "player_id", playerID, "currency", currency, "amount", amount, "balance", balance)
	return balance, nil
}

// lockListing takes the listing's in-process lock, opens a transaction and row-locks the listing
func (s *service) lockListing(ctx context.Context, req TradeRequest) (repository.ListingTx, *domain.ShopListing, func(), error) {
	unlock := s.locks.Lock(req.ListingID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		unlock()
		return nil, nil, nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	release := func() {
		repository.SafeRollback(ctx, tx)
		unlock()
	}

	listing, err := tx.GetListingForUpdate(ctx, req.ListingID)
	if err != nil {
		release()
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, nil, nil, err
		}
		return nil, nil, nil, fmt.Errorf(ErrMsgGetListingFailed, err)
	}
	if err := checkListing(listing, req); err != nil {
		release()
		return nil, nil, nil, err
	}
	return tx, listing, release, nil
}

// finishTrade persists the listing and the trade, commits, and schedules the trade event
func (s *service) finishTrade(ctx context.Context, tx repository.ListingTx, listing *domain.ShopListing, trade *domain.Trade) error {
	if err := tx.SaveListing(ctx, listing); err != nil {
		return fmt.Errorf(ErrMsgSaveListingFailed, err)
	}
	if err := tx.RecordTrade(ctx, trade); err != nil {
		return fmt.Errorf(ErrMsgRecordTradeFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	s.cache.Invalidate(ctx, listing.ID())

	s.wg.Add(1)
	go s.publishTrade(context.WithoutCancel(ctx), *trade, listing.Item().Material)
	return nil
}

// publishTrade runs in the background after commit.
// NOTE: Caller must call s.wg.Add(1) before launching this in a goroutine
func (s *service) publishTrade(ctx context.Context, trade domain.Trade, material string) {
	defer s.wg.Done()

	if s.bus == nil {
		return
	}

	payload := event.TradeCompletedPayloadV1{
		TradeID:   trade.ID.String(),
		ListingID: trade.ListingID.String(),
		PlayerID:  trade.PlayerID,
		Direction: trade.Direction,
		Material:  material,
		Quantity:  trade.Quantity,
		Total:     trade.Total,
		Currency:  trade.Currency,
		Timestamp: trade.CreatedAt.Unix(),
	}
	if trade.ShopID.Valid {
		payload.ShopID = trade.ShopID.UUID.String()
	}

	if err := s.bus.Publish(ctx, event.NewTradeCompletedEvent(payload)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishTradeFailed, "trade_id", trade.ID, "error", err)
	}
}

// Shutdown waits for pending trade events to be handed to the bus
func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgEconomyShuttingDown)
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf(ErrMsgShutdownTimedOut, ctx.Err())
	}
}
