package handler

import (
	"net/http"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/economy"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
)

// TradeRequest is the body of a buy or sell
type TradeRequest struct {
	PlayerID string       `json:"player_id" validate:"required,max=64"`
	Quantity int          `json:"quantity" validate:"required,min=1,max=10000"`
	Currency string       `json:"currency,omitempty" validate:"omitempty,max=32,currency"`
	Item     *ItemRequest `json:"item,omitempty" validate:"omitempty"`
}

func (req TradeRequest) toService(w http.ResponseWriter, r *http.Request) (economy.TradeRequest, bool) {
	shopID, listingID, ok := listingParams(w, r)
	if !ok {
		return economy.TradeRequest{}, false
	}
	out := economy.TradeRequest{
		ShopID:    shopID,
		ListingID: listingID,
		PlayerID:  req.PlayerID,
		Quantity:  req.Quantity,
		Currency:  req.Currency,
	}
	if req.Item != nil {
		item := req.Item.Descriptor()
		out.Item = &item
	}
	return out, true
}

// TradeHandler serves buys, sells and quotes
type TradeHandler struct {
	svc economy.Service
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(svc economy.Service) *TradeHandler {
	return &TradeHandler{svc: svc}
}

// HandleBuy sells units of a listing to a player
// @Summary Buy from listing
// @Description Charges the player the buy price and removes units from finite stock
// @Tags trade
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param listingID path string true "Listing ID"
// @Param request body TradeRequest true "Trade"
// @Success 200 {object} economy.TradeResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/shops/{shopID}/listings/{listingID}/buy [post]
func (h *TradeHandler) HandleBuy(w http.ResponseWriter, r *http.Request) {
	h.handleTrade(w, r, domain.TradeBuy)
}

// HandleSell buys units of a listing back from a player
// @Summary Sell to listing
// @Description Pays the player the sell price and adds units to finite stock. A held item must match the listing.
// @Tags trade
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param listingID path string true "Listing ID"
// @Param request body TradeRequest true "Trade"
// @Success 200 {object} economy.TradeResult
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/shops/{shopID}/listings/{listingID}/sell [post]
func (h *TradeHandler) HandleSell(w http.ResponseWriter, r *http.Request) {
	h.handleTrade(w, r, domain.TradeSell)
}

func (h *TradeHandler) handleTrade(w http.ResponseWriter, r *http.Request, direction string) {
	log := logger.FromContext(r.Context())
	action := "Buy"
	if direction == domain.TradeSell {
		action = "Sell"
	}

	var req TradeRequest
	if err := DecodeAndValidateRequest(r, w, &req, action); err != nil {
		return
	}
	tradeReq, ok := req.toService(w, r)
	if !ok {
		return
	}

	var (
		result *economy.TradeResult
		err    error
	)
	if direction == domain.TradeBuy {
		result, err = h.svc.Buy(r.Context(), tradeReq)
	} else {
		result, err = h.svc.Sell(r.Context(), tradeReq)
	}
	if err != nil {
		respondServiceError(w, r, action, err)
		return
	}

	log.Info(action+" completed", "player_id", req.PlayerID, "listing_id", tradeReq.ListingID, "quantity", req.Quantity, "total", result.Trade.Total)
	respondJSON(w, http.StatusOK, result)
}

// HandleQuote prices a trade without executing it
// @Summary Quote a trade
// @Tags trade
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param listingID path string true "Listing ID"
// @Param direction query string false "buy or sell" default(buy)
// @Param quantity query int false "Units" default(1)
// @Success 200 {object} economy.Quote
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/shops/{shopID}/listings/{listingID}/quote [get]
func (h *TradeHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	shopID, listingID, ok := listingParams(w, r)
	if !ok {
		return
	}
	direction := GetOptionalQueryParam(r, "direction", domain.TradeBuy)
	quantity, ok := GetIntQueryParam(r, w, "quantity", 1)
	if !ok {
		return
	}

	quote, err := h.svc.Quote(r.Context(), shopID, listingID, direction, quantity)
	if err != nil {
		respondServiceError(w, r, "Quote", err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}
