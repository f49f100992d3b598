package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/shop"
)

var (
	testShopID    = uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-901234567890")
	testListingID = uuid.MustParse("0b7e6c1a-2f3d-4e5f-9a8b-7c6d5e4f3a2b")
)

func testListing() *domain.ShopListing {
	return domain.Restore(testListingID, uuid.NullUUID{UUID: testShopID, Valid: true},
		domain.ItemDescriptor{Material: "DIAMOND"}, 100, 80, "gem_shard", 5)
}

func listingPathParams() map[string]string {
	return map[string]string{"shopID": testShopID.String(), "listingID": testListingID.String()}
}

func TestHandleCreate(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*MockShopService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Simple listing from price",
			body: map[string]interface{}{"item": map[string]string{"material": "BREAD"}, "price": 5},
			setupMocks: func(m *MockShopService) {
				listing := domain.RestoreSimple(testListingID, uuid.NullUUID{UUID: testShopID, Valid: true}, domain.ItemDescriptor{Material: "BREAD"}, 5)
				m.On("AddSimpleListing", mock.Anything, testShopID, domain.ItemDescriptor{Material: "BREAD"}, 5.0).Return(listing, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"unlimited":true`,
		},
		{
			name: "Full listing defaults to unlimited stock",
			body: map[string]interface{}{
				"item":       map[string]interface{}{"material": "DIAMOND", "display_name": "Shiny"},
				"buy_price":  100,
				"sell_price": 80,
				"currency":   "gem_shard",
			},
			setupMocks: func(m *MockShopService) {
				m.On("AddListing", mock.Anything, testShopID, mock.MatchedBy(func(req shop.AddListingRequest) bool {
					return req.Stock == domain.UnlimitedStock && req.Currency == "gem_shard" &&
						req.Item.HasMeta() && *req.Item.Meta.DisplayName == "Shiny"
				})).Return(testListing(), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"currency_display":"Gem Shard"`,
		},
		{
			name:           "Price mixed with buy price",
			body:           map[string]interface{}{"item": map[string]string{"material": "BREAD"}, "price": 5, "buy_price": 6, "sell_price": 4},
			setupMocks:     func(m *MockShopService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:           "Buy price without sell price",
			body:           map[string]interface{}{"item": map[string]string{"material": "BREAD"}, "buy_price": 6},
			setupMocks:     func(m *MockShopService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"sell_price"`,
		},
		{
			name:           "Bad material",
			body:           map[string]interface{}{"item": map[string]string{"material": "no spaces"}, "price": 1},
			setupMocks:     func(m *MockShopService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid material name",
		},
		{
			name:           "Unknown field",
			body:           `{"item": {"material": "BREAD"}, "price": 1, "colour": "red"}`,
			setupMocks:     func(m *MockShopService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Domain rejects listing",
			body: map[string]interface{}{"item": map[string]string{"material": "BREAD"}, "buy_price": 6, "sell_price": 4, "stock": -1},
			setupMocks: func(m *MockShopService) {
				m.On("AddListing", mock.Anything, testShopID, mock.Anything).Return(nil, domain.ErrInvalidListing)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidListing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// ARRANGE
			svc := new(MockShopService)
			tt.setupMocks(svc)
			h := NewListingHandler(svc)
			req := newRequest(t, http.MethodPost, "/listings", tt.body, map[string]string{"shopID": testShopID.String()})
			w := httptest.NewRecorder()

			// ACT
			h.HandleCreate(w, req)

			// ASSERT
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGet(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("GetListing", mock.Anything, testShopID, testListingID).Return(testListing(), nil)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleGet(w, newRequest(t, http.MethodGet, "/", nil, listingPathParams()))

		require.Equal(t, http.StatusOK, w.Code)
		var resp ListingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testListingID.String(), resp.ID)
		assert.Equal(t, testShopID.String(), resp.ShopID)
		assert.Equal(t, 100.0, resp.BuyPrice)
		assert.Equal(t, 80.0, resp.SellPrice)
		assert.Equal(t, 5, resp.Stock)
		assert.False(t, resp.Unlimited)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("GetListing", mock.Anything, testShopID, testListingID).Return(nil, domain.ErrListingNotFound)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleGet(w, newRequest(t, http.MethodGet, "/", nil, listingPathParams()))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgListingNotFound)
	})

	t.Run("Bad listing id", func(t *testing.T) {
		svc := new(MockShopService)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleGet(w, newRequest(t, http.MethodGet, "/", nil,
			map[string]string{"shopID": testShopID.String(), "listingID": "nope"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid listingID")
		svc.AssertNotCalled(t, "GetListing", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleList(t *testing.T) {
	svc := new(MockShopService)
	svc.On("ListListings", mock.Anything, testShopID).Return([]*domain.ShopListing{testListing()}, nil)
	w := httptest.NewRecorder()

	NewListingHandler(svc).HandleList(w, newRequest(t, http.MethodGet, "/", nil, map[string]string{"shopID": testShopID.String()}))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "DIAMOND", resp[0].Item.Material)
}

func TestHandleDelete(t *testing.T) {
	svc := new(MockShopService)
	svc.On("RemoveListing", mock.Anything, testShopID, testListingID).Return(nil)
	w := httptest.NewRecorder()

	NewListingHandler(svc).HandleDelete(w, newRequest(t, http.MethodDelete, "/", nil, listingPathParams()))

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleUpdatePrices(t *testing.T) {
	t.Run("Price derives sell price", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("UpdatePrices", mock.Anything, testShopID, testListingID, shop.PriceUpdate{Price: ptr(50.0)}).
			Return(testListing(), nil)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleUpdatePrices(w, newRequest(t, http.MethodPut, "/", map[string]float64{"price": 50}, listingPathParams()))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Empty body", func(t *testing.T) {
		svc := new(MockShopService)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleUpdatePrices(w, newRequest(t, http.MethodPut, "/", `{}`, listingPathParams()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"price"`)
	})

	t.Run("Negative price", func(t *testing.T) {
		svc := new(MockShopService)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleUpdatePrices(w, newRequest(t, http.MethodPut, "/", map[string]float64{"sell_price": -1}, listingPathParams()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Must be at least 0")
	})
}

func TestHandleSetCurrency(t *testing.T) {
	svc := new(MockShopService)
	svc.On("SetCurrency", mock.Anything, testShopID, testListingID, "gem").Return(testListing(), nil)
	w := httptest.NewRecorder()

	NewListingHandler(svc).HandleSetCurrency(w, newRequest(t, http.MethodPut, "/", map[string]string{"currency": "gem"}, listingPathParams()))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	NewListingHandler(svc).HandleSetCurrency(w, newRequest(t, http.MethodPut, "/", map[string]string{"currency": "Gem!"}, listingPathParams()))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "SetCurrency", 1)
}

func TestHandleRestock(t *testing.T) {
	t.Run("Add to unlimited reports unlimited", func(t *testing.T) {
		svc := new(MockShopService)
		listing := domain.RestoreSimple(testListingID, uuid.NullUUID{UUID: testShopID, Valid: true}, domain.ItemDescriptor{Material: "DIRT"}, 1)
		svc.On("Restock", mock.Anything, testShopID, testListingID, shop.RestockRequest{Add: ptr(10)}).
			Return(listing, domain.StockResult{Kind: domain.StockUnlimited, Stock: domain.UnlimitedStock}, nil)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleRestock(w, newRequest(t, http.MethodPost, "/", map[string]int{"add": 10}, listingPathParams()))

		require.Equal(t, http.StatusOK, w.Code)
		var resp RestockResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unlimited", resp.Result)
		assert.True(t, resp.Listing.Unlimited)
	})

	t.Run("Add and set together", func(t *testing.T) {
		svc := new(MockShopService)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleRestock(w, newRequest(t, http.MethodPost, "/", map[string]int{"add": 1, "set": 3}, listingPathParams()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Negative add beyond stock conflicts", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("Restock", mock.Anything, testShopID, testListingID, shop.RestockRequest{Add: ptr(-4)}).
			Return(nil, domain.StockResult{}, fmt.Errorf("cannot add -4 to stock 3: %w", domain.ErrInsufficientStock))
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleRestock(w, newRequest(t, http.MethodPost, "/", map[string]int{"add": -4}, listingPathParams()))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NotContains(t, w.Body.String(), `"unlimited":true`)
	})

	t.Run("Negative add within stock", func(t *testing.T) {
		svc := new(MockShopService)
		listing := domain.Restore(testListingID, uuid.NullUUID{UUID: testShopID, Valid: true}, domain.ItemDescriptor{Material: "DIRT"}, 1, 1, "coin", 0)
		svc.On("Restock", mock.Anything, testShopID, testListingID, shop.RestockRequest{Add: ptr(-3)}).
			Return(listing, domain.StockResult{Kind: domain.StockUpdated, Stock: 0}, nil)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleRestock(w, newRequest(t, http.MethodPost, "/", map[string]int{"add": -3}, listingPathParams()))

		require.Equal(t, http.StatusOK, w.Code)
		var resp RestockResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "updated", resp.Result)
		assert.Equal(t, 0, resp.Listing.Stock)
		assert.False(t, resp.Listing.Unlimited)
	})

	t.Run("Set below unlimited", func(t *testing.T) {
		svc := new(MockShopService)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleRestock(w, newRequest(t, http.MethodPost, "/", map[string]int{"set": -2}, listingPathParams()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleMatch(t *testing.T) {
	held := domain.ItemDescriptor{Material: "DIAMOND", Meta: &domain.ItemMeta{Enchantments: map[string]int{"fortune": 3}}}

	svc := new(MockShopService)
	svc.On("FindMatching", mock.Anything, testShopID, &held).Return(nil, domain.ErrListingNotFound)
	w := httptest.NewRecorder()

	body := map[string]interface{}{"material": "DIAMOND", "enchantments": map[string]int{"fortune": 3}}
	NewListingHandler(svc).HandleMatch(w, newRequest(t, http.MethodPost, "/", body, map[string]string{"shopID": testShopID.String()}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleTrades(t *testing.T) {
	trades := []domain.Trade{{ListingID: testListingID, PlayerID: "steve", Direction: domain.TradeBuy, Quantity: 2, Total: 200, Currency: "gem_shard"}}

	t.Run("Default limit", func(t *testing.T) {
		svc := new(MockShopService)
		svc.On("ListTrades", mock.Anything, testShopID, testListingID, shop.DefaultTradeHistoryLimit).Return(trades, nil)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleTrades(w, newRequest(t, http.MethodGet, "/trades", nil, listingPathParams()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"player_id":"steve"`)
	})

	t.Run("Bad limit", func(t *testing.T) {
		svc := new(MockShopService)
		w := httptest.NewRecorder()

		NewListingHandler(svc).HandleTrades(w, newRequest(t, http.MethodGet, "/trades?limit=lots", nil, listingPathParams()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid limit query parameter")
	})
}
