package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/economy"
)

func TestHandleBuy(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{name: "Success", body: map[string]interface{}{"player_id": "steve", "quantity": 2}, expectedStatus: http.StatusOK, expectedBody: `"balance":300`},
		{name: "Out of stock", body: map[string]interface{}{"player_id": "steve", "quantity": 2}, serviceErr: fmt.Errorf("requested 2, only 1 in stock: %w", domain.ErrInsufficientStock), expectedStatus: http.StatusConflict, expectedBody: ErrMsgOutOfStock},
		{name: "Not enough money", body: map[string]interface{}{"player_id": "steve", "quantity": 2}, serviceErr: domain.ErrInsufficientFunds, expectedStatus: http.StatusBadRequest, expectedBody: ErrMsgNotEnoughMoney},
		{name: "Wrong currency", body: map[string]interface{}{"player_id": "steve", "quantity": 2, "currency": "coin"}, serviceErr: domain.ErrCurrencyMismatch, expectedStatus: http.StatusConflict, expectedBody: ErrMsgWrongCurrency},
		{name: "Store failure", body: map[string]interface{}{"player_id": "steve", "quantity": 2}, serviceErr: errors.New("connection reset"), expectedStatus: http.StatusInternalServerError, expectedBody: ErrMsgGenericServerError},
		{name: "Zero quantity", body: map[string]interface{}{"player_id": "steve", "quantity": 0}, expectedStatus: http.StatusBadRequest, expectedBody: `"quantity"`},
		{name: "Missing player", body: map[string]interface{}{"quantity": 1}, expectedStatus: http.StatusBadRequest, expectedBody: `"player_id"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// ARRANGE
			svc := new(MockEconomyService)
			if tt.expectedStatus != http.StatusBadRequest || tt.serviceErr != nil {
				call := svc.On("Buy", mock.Anything, mock.MatchedBy(func(req economy.TradeRequest) bool {
					return req.ShopID == testShopID && req.ListingID == testListingID && req.PlayerID == "steve" && req.Item == nil
				}))
				if tt.serviceErr != nil {
					call.Return(nil, tt.serviceErr)
				} else {
					call.Return(&economy.TradeResult{
						Trade:   domain.Trade{ListingID: testListingID, PlayerID: "steve", Direction: domain.TradeBuy, Quantity: 2, Total: 200},
						Balance: 300,
						Stock:   3,
					}, nil)
				}
			}
			w := httptest.NewRecorder()

			// ACT
			NewTradeHandler(svc).HandleBuy(w, newRequest(t, http.MethodPost, "/buy", tt.body, listingPathParams()))

			// ASSERT
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleSell_PassesHeldItem(t *testing.T) {
	svc := new(MockEconomyService)
	svc.On("Sell", mock.Anything, mock.MatchedBy(func(req economy.TradeRequest) bool {
		return req.Item != nil && req.Item.Material == "DIAMOND" && req.Item.Meta == nil && req.Quantity == 4
	})).Return(nil, domain.ErrItemMismatch)
	w := httptest.NewRecorder()

	body := map[string]interface{}{"player_id": "alex", "quantity": 4, "item": map[string]string{"material": "DIAMOND"}}
	NewTradeHandler(svc).HandleSell(w, newRequest(t, http.MethodPost, "/sell", body, listingPathParams()))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgItemDoesNotMatch)
	svc.AssertExpectations(t)
}

func TestHandleQuote(t *testing.T) {
	t.Run("Defaults to buying one", func(t *testing.T) {
		svc := new(MockEconomyService)
		svc.On("Quote", mock.Anything, testShopID, testListingID, domain.TradeBuy, 1).Return(&economy.Quote{
			ListingID: testListingID, Direction: domain.TradeBuy, Quantity: 1, UnitPrice: 100, Total: 100, Currency: "gem_shard", InStock: true,
		}, nil)
		w := httptest.NewRecorder()

		NewTradeHandler(svc).HandleQuote(w, newRequest(t, http.MethodGet, "/quote", nil, listingPathParams()))

		require.Equal(t, http.StatusOK, w.Code)
		var quote economy.Quote
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
		assert.Equal(t, 100.0, quote.Total)
		assert.True(t, quote.InStock)
	})

	t.Run("Unknown direction", func(t *testing.T) {
		svc := new(MockEconomyService)
		svc.On("Quote", mock.Anything, testShopID, testListingID, "lend", 3).Return(nil, domain.ErrInvalidInput)
		w := httptest.NewRecorder()

		NewTradeHandler(svc).HandleQuote(w, newRequest(t, http.MethodGet, "/quote?direction=lend&quantity=3", nil, listingPathParams()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
