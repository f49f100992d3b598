package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/FrizzlenShop_Go/internal/cache"
	"github.com/osse101/FrizzlenShop_Go/internal/concurrency"
	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/event"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
	"github.com/osse101/FrizzlenShop_Go/internal/repository"
)

// AddListingRequest describes a new listing. An empty currency falls back to domain.DefaultCurrency.
type AddListingRequest struct {
	Item      domain.ItemDescriptor `json:"item"`
	BuyPrice  float64               `json:"buy_price"`
	SellPrice float64               `json:"sell_price"`
	Currency  string                `json:"currency"`
	Stock     int                   `json:"stock"`
}

// PriceUpdate changes listing prices. Price sets the buy price and derives the
// sell price from it; an explicit SellPrice is applied afterwards.
type PriceUpdate struct {
	Price     *float64 `json:"price,omitempty"`
	BuyPrice  *float64 `json:"buy_price,omitempty"`
	SellPrice *float64 `json:"sell_price,omitempty"`
}

// RestockRequest either adds to the stock or sets it outright
type RestockRequest struct {
	Add *int `json:"add,omitempty"`
	Set *int `json:"set,omitempty"`
}

// Service manages the listings of shops
type Service interface {
	AddListing(ctx context.Context, shopID uuid.UUID, req AddListingRequest) (*domain.ShopListing, error)
	AddSimpleListing(ctx context.Context, shopID uuid.UUID, item domain.ItemDescriptor, price float64) (*domain.ShopListing, error)
	GetListing(ctx context.Context, shopID, listingID uuid.UUID) (*domain.ShopListing, error)
	ListListings(ctx context.Context, shopID uuid.UUID) ([]*domain.ShopListing, error)
	UpdatePrices(ctx context.Context, shopID, listingID uuid.UUID, update PriceUpdate) (*domain.ShopListing, error)
	SetCurrency(ctx context.Context, shopID, listingID uuid.UUID, currency string) (*domain.ShopListing, error)
	Restock(ctx context.Context, shopID, listingID uuid.UUID, req RestockRequest) (*domain.ShopListing, domain.StockResult, error)
	RemoveListing(ctx context.Context, shopID, listingID uuid.UUID) error
	FindMatching(ctx context.Context, shopID uuid.UUID, item *domain.ItemDescriptor) (*domain.ShopListing, error)
	ListTrades(ctx context.Context, shopID, listingID uuid.UUID, limit int) ([]domain.Trade, error)
}

type service struct {
	repo  repository.Listing
	cache cache.Cache
	locks *concurrency.LockManager
	bus   event.Bus
}

// NewService creates a new shop service. The lock manager should be shared with
// the economy service so both serialise on the same listing.
func NewService(repo repository.Listing, c cache.Cache, locks *concurrency.LockManager, bus event.Bus) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:  repo,
		cache: c,
		locks: locks,
		bus:   bus,
	}
}

func (s *service) AddListing(ctx context.Context, shopID uuid.UUID, req AddListingRequest) (*domain.ShopListing, error) {
	log := logger.FromContext(ctx)

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	listing, err := domain.NewValidated(domain.ListingParams{
		ShopID:    uuid.NullUUID{UUID: shopID, Valid: true},
		Item:      req.Item,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Currency:  currency,
		Stock:     req.Stock,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveListing(ctx, listing); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveListingFailed, err)
	}

	log.Info(LogMsgListingAdded, "shop_id", shopID, "listing_id", listing.ID(), "material", req.Item.Material)
	s.publish(ctx, event.NewListingEvent(event.ListingCreated, listingPayload(listing)))
	return listing, nil
}

func (s *service) AddSimpleListing(ctx context.Context, shopID uuid.UUID, item domain.ItemDescriptor, price float64) (*domain.ShopListing, error) {
	log := logger.FromContext(ctx)

	if item.Material == "" {
		return nil, fmt.Errorf(ErrMsgMaterialRequiredFmt, domain.ErrInvalidListing)
	}
	if price < 0 {
		return nil, fmt.Errorf(ErrMsgNegativePriceFmt, price, domain.ErrInvalidListing)
	}

	listing := domain.RestoreSimple(uuid.New(), uuid.NullUUID{UUID: shopID, Valid: true}, item, price)
	if err := s.repo.SaveListing(ctx, listing); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveListingFailed, err)
	}

	log.Info(LogMsgListingAdded, "shop_id", shopID, "listing_id", listing.ID(), "material", item.Material)
	s.publish(ctx, event.NewListingEvent(event.ListingCreated, listingPayload(listing)))
	return listing, nil
}

func (s *service) GetListing(ctx context.Context, shopID, listingID uuid.UUID) (*domain.ShopListing, error) {
	if listing, ok := s.cache.Get(ctx, listingID); ok {
		logger.FromContext(ctx).Debug(LogMsgCacheHit, "listing_id", listingID)
		if err := checkShop(listing, shopID); err != nil {
			return nil, err
		}
		return listing, nil
	}

	// Writers invalidate under this lock, so the fill cannot outlive a newer commit
	unlock := s.locks.Lock(listingID)
	defer unlock()

	listing, ok := s.cache.Get(ctx, listingID)
	if !ok {
		var err error
		listing, err = s.repo.GetListing(ctx, listingID)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf(ErrMsgGetListingFailed, err)
		}
		s.cache.Set(ctx, listing)
	}
	if err := checkShop(listing, shopID); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *service) ListListings(ctx context.Context, shopID uuid.UUID) ([]*domain.ShopListing, error) {
	listings, err := s.repo.ListListingsByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListListingsFailed, err)
	}
	return listings, nil
}

func (s *service) UpdatePrices(ctx context.Context, shopID, listingID uuid.UUID, update PriceUpdate) (*domain.ShopListing, error) {
	if update.Price == nil && update.BuyPrice == nil && update.SellPrice == nil {
		return nil, fmt.Errorf(ErrMsgNoPriceGivenFmt, domain.ErrInvalidInput)
	}
	for _, p := range []*float64{update.Price, update.BuyPrice, update.SellPrice} {
		if p != nil && *p < 0 {
			return nil, fmt.Errorf(ErrMsgNegativePriceFmt, *p, domain.ErrInvalidInput)
		}
	}

	var payload event.PriceChangedPayloadV1
	listing, err := s.mutate(ctx, shopID, listingID, func(l *domain.ShopListing) error {
		payload.OldBuyPrice = l.BuyPrice()
		payload.OldSellPrice = l.SellPrice()

		if update.Price != nil {
			l.SetPrice(*update.Price)
		}
		if update.BuyPrice != nil {
			l.SetBuyPrice(*update.BuyPrice)
		}
		if update.SellPrice != nil {
			l.SetSellPrice(*update.SellPrice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload.ListingID = listing.ID().String()
	payload.Currency = listing.Currency()
	payload.NewBuyPrice = listing.BuyPrice()
	payload.NewSellPrice = listing.SellPrice()
	payload.ChangedAt = listing.LastPriceChange()

	logger.FromContext(ctx).Info(LogMsgPricesUpdated,
		"listing_id", listingID,
		"buy_price", payload.NewBuyPrice,
		"sell_price", payload.NewSellPrice)
	s.publish(ctx, event.NewPriceChangedEvent(payload))
	return listing, nil
}

func (s *service) SetCurrency(ctx context.Context, shopID, listingID uuid.UUID, currency string) (*domain.ShopListing, error) {
	if currency == "" {
		return nil, fmt.Errorf(ErrMsgCurrencyRequiredFmt, domain.ErrInvalidInput)
	}

	listing, err := s.mutate(ctx, shopID, listingID, func(l *domain.ShopListing) error {
		l.SetCurrency(currency)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCurrencyChanged, "listing_id", listingID, "currency", currency)
	return listing, nil
}

func (s *service) Restock(ctx context.Context, shopID, listingID uuid.UUID, req RestockRequest) (*domain.ShopListing, domain.StockResult, error) {
	if (req.Add == nil) == (req.Set == nil) {
		return nil, domain.StockResult{}, fmt.Errorf(ErrMsgRestockModeFmt, domain.ErrInvalidInput)
	}
	if req.Set != nil && *req.Set < domain.UnlimitedStock {
		return nil, domain.StockResult{}, fmt.Errorf(ErrMsgInvalidStockFmt, *req.Set, domain.ErrInvalidInput)
	}

	var result domain.StockResult
	listing, err := s.mutate(ctx, shopID, listingID, func(l *domain.ShopListing) error {
		if req.Set != nil {
			l.SetStock(*req.Set)
			result = domain.StockResult{Kind: domain.StockUpdated, Stock: *req.Set}
			if *req.Set == domain.UnlimitedStock {
				result.Kind = domain.StockUnlimited
			}
			return nil
		}
		if *req.Add < 0 {
			// A negative add must not run finite stock into the unlimited sentinel
			result = l.TryRemoveStock(-*req.Add)
			if result.Insufficient() {
				return fmt.Errorf(ErrMsgStockUnderflowFmt, *req.Add, result.Stock, domain.ErrInsufficientStock)
			}
			return nil
		}
		result = l.TryAddStock(*req.Add)
		return nil
	})
	if err != nil {
		return nil, domain.StockResult{}, err
	}

	log := logger.FromContext(ctx)
	if req.Add != nil && result.Unlimited() {
		log.Debug(LogMsgRestockIgnored, "listing_id", listingID)
		return listing, result, nil
	}

	log.Info(LogMsgListingRestocked, "listing_id", listingID, "stock", listing.Stock())
	s.publish(ctx, event.NewRestockedEvent(listing.ID(), listing.Stock()))
	return listing, result, nil
}

func (s *service) RemoveListing(ctx context.Context, shopID, listingID uuid.UUID) error {
	unlock := s.locks.Lock(listingID)
	defer unlock()

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return err
		}
		return fmt.Errorf(ErrMsgGetListingFailed, err)
	}
	if err := checkShop(listing, shopID); err != nil {
		return err
	}

	if err := s.repo.DeleteListing(ctx, listingID); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return err
		}
		return fmt.Errorf(ErrMsgDeleteListingFailed, err)
	}

	s.cache.Invalidate(ctx, listingID)
	s.locks.Forget(listingID)

	logger.FromContext(ctx).Info(LogMsgListingRemoved, "shop_id", shopID, "listing_id", listingID)
	s.publish(ctx, event.NewListingEvent(event.ListingRemoved, listingPayload(listing)))
	return nil
}

// FindMatching returns the first listing of the shop whose item matches the held item
func (s *service) FindMatching(ctx context.Context, shopID uuid.UUID, item *domain.ItemDescriptor) (*domain.ShopListing, error) {
	if item == nil || item.Material == "" {
		return nil, fmt.Errorf(ErrMsgMaterialRequiredFmt, domain.ErrInvalidInput)
	}

	listings, err := s.ListListings(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for _, l := range listings {
		if l.Matches(item) {
			return l, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func (s *service) ListTrades(ctx context.Context, shopID, listingID uuid.UUID, limit int) ([]domain.Trade, error) {
	if _, err := s.GetListing(ctx, shopID, listingID); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultTradeHistoryLimit
	case limit > MaxTradeHistoryLimit:
		limit = MaxTradeHistoryLimit
	}

	trades, err := s.repo.GetTrades(ctx, listingID, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetTradesFailed, err)
	}
	return trades, nil
}

// mutate loads the listing under both the in-process lock and a row lock,
// applies fn and persists the result.
func (s *service) mutate(ctx context.Context, shopID, listingID uuid.UUID, fn func(*domain.ShopListing) error) (*domain.ShopListing, error) {
	unlock := s.locks.Lock(listingID)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgGetListingFailed, err)
	}
	if err := checkShop(listing, shopID); err != nil {
		return nil, err
	}

	if err := fn(listing); err != nil {
		return nil, err
	}

	if err := tx.SaveListing(ctx, listing); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveListingFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	s.cache.Invalidate(ctx, listingID)
	return listing, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishEventFailed, "type", evt.Type, "error", err)
	}
}

// checkShop hides listings of other shops behind ErrListingNotFound
func checkShop(listing *domain.ShopListing, shopID uuid.UUID) error {
	owner := listing.ShopID()
	if !owner.Valid || owner.UUID != shopID {
		return fmt.Errorf(ErrMsgWrongShopFmt, listing.ID(), shopID, domain.ErrListingNotFound)
	}
	return nil
}

func listingPayload(l *domain.ShopListing) event.ListingPayloadV1 {
	p := event.ListingPayloadV1{
		ListingID: l.ID().String(),
		Material:  l.Item().Material,
		Currency:  l.Currency(),
		BuyPrice:  l.BuyPrice(),
		SellPrice: l.SellPrice(),
		Stock:     l.Stock(),
	}
	if shopID := l.ShopID(); shopID.Valid {
		p.ShopID = shopID.UUID.String()
	}
	return p
}
