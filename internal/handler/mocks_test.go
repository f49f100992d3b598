package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrizzlenShop_Go/internal/cache"
	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/economy"
	"github.com/osse101/FrizzlenShop_Go/internal/shop"
)

// MockShopService mocks shop.Service
type MockShopService struct {
	mock.Mock
}

func (m *MockShopService) AddListing(ctx context.Context, shopID uuid.UUID, req shop.AddListingRequest) (*domain.ShopListing, error) {
	args := m.Called(ctx, shopID, req)
	return listingArg(args, 0), args.Error(1)
}

func (m *MockShopService) AddSimpleListing(ctx context.Context, shopID uuid.UUID, item domain.ItemDescriptor, price float64) (*domain.ShopListing, error) {
	args := m.Called(ctx, shopID, item, price)
	return listingArg(args, 0), args.Error(1)
}

func (m *MockShopService) GetListing(ctx context.Context, shopID, listingID uuid.UUID) (*domain.ShopListing, error) {
	args := m.Called(ctx, shopID, listingID)
	return listingArg(args, 0), args.Error(1)
}

func (m *MockShopService) ListListings(ctx context.Context, shopID uuid.UUID) ([]*domain.ShopListing, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShopListing), args.Error(1)
}

func (m *MockShopService) UpdatePrices(ctx context.Context, shopID, listingID uuid.UUID, update shop.PriceUpdate) (*domain.ShopListing, error) {
	args := m.Called(ctx, shopID, listingID, update)
	return listingArg(args, 0), args.Error(1)
}

func (m *MockShopService) SetCurrency(ctx context.Context, shopID, listingID uuid.UUID, currency string) (*domain.ShopListing, error) {
	args := m.Called(ctx, shopID, listingID, currency)
	return listingArg(args, 0), args.Error(1)
}

func (m *MockShopService) Restock(ctx context.Context, shopID, listingID uuid.UUID, req shop.RestockRequest) (*domain.ShopListing, domain.StockResult, error) {
	args := m.Called(ctx, shopID, listingID, req)
	return listingArg(args, 0), args.Get(1).(domain.StockResult), args.Error(2)
}

func (m *MockShopService) RemoveListing(ctx context.Context, shopID, listingID uuid.UUID) error {
	args := m.Called(ctx, shopID, listingID)
	return args.Error(0)
}

func (m *MockShopService) FindMatching(ctx context.Context, shopID uuid.UUID, item *domain.ItemDescriptor) (*domain.ShopListing, error) {
	args := m.Called(ctx, shopID, item)
	return listingArg(args, 0), args.Error(1)
}

func (m *MockShopService) ListTrades(ctx context.Context, shopID, listingID uuid.UUID, limit int) ([]domain.Trade, error) {
	args := m.Called(ctx, shopID, listingID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

// MockEconomyService mocks economy.Service
type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) Buy(ctx context.Context, req economy.TradeRequest) (*economy.TradeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.TradeResult), args.Error(1)
}

func (m *MockEconomyService) Sell(ctx context.Context, req economy.TradeRequest) (*economy.TradeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.TradeResult), args.Error(1)
}

func (m *MockEconomyService) Quote(ctx context.Context, shopID, listingID uuid.UUID, direction string, quantity int) (*economy.Quote, error) {
	args := m.Called(ctx, shopID, listingID, direction, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.Quote), args.Error(1)
}

func (m *MockEconomyService) GetBalance(ctx context.Context, playerID, currency string) (float64, error) {
	args := m.Called(ctx, playerID, currency)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEconomyService) Deposit(ctx context.Context, playerID, currency string, amount float64) (float64, error) {
	args := m.Called(ctx, playerID, currency, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEconomyService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCache mocks cache.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, id uuid.UUID) (*domain.ShopListing, bool) {
	args := m.Called(ctx, id)
	return listingArg(args, 0), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, listing *domain.ShopListing) {
	m.Called(ctx, listing)
}

func (m *MockCache) Invalidate(ctx context.Context, id uuid.UUID) {
	m.Called(ctx, id)
}

func (m *MockCache) Clear(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockCache) Stats() cache.Stats {
	args := m.Called()
	return args.Get(0).(cache.Stats)
}

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

func listingArg(args mock.Arguments, i int) *domain.ShopListing {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*domain.ShopListing)
}

// newRequest builds a request with chi path parameters already routed
func newRequest(t *testing.T, method, target string, body interface{}, params map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func ptr[T any](v T) *T { return &v }
