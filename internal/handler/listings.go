package handler

import (
	"net/http"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/shop"
)

// ItemRequest describes a game item in a request body
type ItemRequest struct {
	Material        string         `json:"material" validate:"required,max=64,material"`
	DisplayName     *string        `json:"display_name,omitempty" validate:"omitempty,max=256"`
	Lore            []string       `json:"lore,omitempty" validate:"omitempty,max=32"`
	Enchantments    map[string]int `json:"enchantments,omitempty" validate:"omitempty,dive,gte=1"`
	Damageable      bool           `json:"damageable,omitempty"`
	Damage          *int           `json:"damage,omitempty" validate:"omitempty,gte=0"`
	CustomModelData *int           `json:"custom_model_data,omitempty"`
}

// Descriptor converts the request into the domain item
func (i ItemRequest) Descriptor() domain.ItemDescriptor {
	return domain.NewItemDescriptor(i.Material, domain.ItemMeta{
		DisplayName:     i.DisplayName,
		Lore:            i.Lore,
		Enchantments:    i.Enchantments,
		Damageable:      i.Damageable,
		Damage:          i.Damage,
		CustomModelData: i.CustomModelData,
	})
}

// CreateListingRequest creates a listing either from a single price or from an explicit buy/sell pair
type CreateListingRequest struct {
	Item      ItemRequest `json:"item" validate:"required"`
	Price     *float64    `json:"price,omitempty" validate:"required_without=BuyPrice,excluded_with=BuyPrice,omitempty,gte=0"`
	BuyPrice  *float64    `json:"buy_price,omitempty" validate:"omitempty,gte=0"`
	SellPrice *float64    `json:"sell_price,omitempty" validate:"required_with=BuyPrice,excluded_with=Price,omitempty,gte=0"`
	Currency  string      `json:"currency,omitempty" validate:"excluded_with=Price,omitempty,max=32,currency"`
	Stock     *int        `json:"stock,omitempty" validate:"excluded_with=Price,omitempty,gte=-1"`
}

// UpdatePricesRequest reprices a listing. Price derives the sell price from the buy price.
type UpdatePricesRequest struct {
	Price     *float64 `json:"price,omitempty" validate:"required_without_all=BuyPrice SellPrice,omitempty,gte=0"`
	BuyPrice  *float64 `json:"buy_price,omitempty" validate:"omitempty,gte=0"`
	SellPrice *float64 `json:"sell_price,omitempty" validate:"omitempty,gte=0"`
}

// SetCurrencyRequest changes the currency of a listing
type SetCurrencyRequest struct {
	Currency string `json:"currency" validate:"required,max=32,currency"`
}

// RestockRequest adds to the stock or sets it outright
type RestockRequest struct {
	Add *int `json:"add,omitempty" validate:"required_without=Set,excluded_with=Set"`
	Set *int `json:"set,omitempty" validate:"omitempty,gte=-1"`
}

// ListingResponse is the public view of a listing
type ListingResponse struct {
	ID              string                `json:"id"`
	ShopID          string                `json:"shop_id,omitempty"`
	Item            domain.ItemDescriptor `json:"item"`
	BuyPrice        float64               `json:"buy_price"`
	SellPrice       float64               `json:"sell_price"`
	Currency        string                `json:"currency"`
	CurrencyDisplay string                `json:"currency_display"`
	Stock           int                   `json:"stock"`
	Unlimited       bool                  `json:"unlimited"`
	SoldCount       int                   `json:"sold_count"`
	BoughtCount     int                   `json:"bought_count"`
	LastPriceChange int64                 `json:"last_price_change"`
}

// RestockResponse reports the outcome of a restock
type RestockResponse struct {
	Listing ListingResponse `json:"listing"`
	Result  string          `json:"result"`
}

// NewListingResponse builds the public view of a listing
func NewListingResponse(l *domain.ShopListing) ListingResponse {
	s := l.Snapshot()
	resp := ListingResponse{
		ID:              s.ID.String(),
		Item:            s.Item,
		BuyPrice:        s.BuyPrice,
		SellPrice:       s.SellPrice,
		Currency:        s.Currency,
		CurrencyDisplay: CurrencyDisplayName(s.Currency),
		Stock:           s.Stock,
		Unlimited:       s.Stock == domain.UnlimitedStock,
		SoldCount:       s.SoldCount,
		BoughtCount:     s.BoughtCount,
		LastPriceChange: s.LastPriceChange,
	}
	if s.ShopID.Valid {
		resp.ShopID = s.ShopID.UUID.String()
	}
	return resp
}

func newListingResponses(listings []*domain.ShopListing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, NewListingResponse(l))
	}
	return out
}

// ListingHandler serves the listing routes of a shop
type ListingHandler struct {
	svc shop.Service
}

// NewListingHandler creates a new listing handler
func NewListingHandler(svc shop.Service) *ListingHandler {
	return &ListingHandler{svc: svc}
}

// HandleList returns every listing of a shop
// @Summary List listings
// @Tags listings
// @Produce json
// @Param shopID path string true "Shop ID"
// @Success 200 {array} ListingResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/shops/{shopID}/listings [get]
func (h *ListingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	shopID, ok := URLParamUUID(w, r, "shopID")
	if !ok {
		return
	}

	listings, err := h.svc.ListListings(r.Context(), shopID)
	if err != nil {
		respondServiceError(w, r, "List listings", err)
		return
	}
	respondJSON(w, http.StatusOK, newListingResponses(listings))
}

// HandleCreate adds a listing to a shop
// @Summary Create listing
// @Description A single price creates an unlimited listing in the default currency whose sell price is derived from it
// @Tags listings
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param request body CreateListingRequest true "Listing"
// @Success 201 {object} ListingResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/shops/{shopID}/listings [post]
func (h *ListingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	shopID, ok := URLParamUUID(w, r, "shopID")
	if !ok {
		return
	}

	var req CreateListingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create listing"); err != nil {
		return
	}

	var (
		listing *domain.ShopListing
		err     error
	)
	if req.Price != nil {
		listing, err = h.svc.AddSimpleListing(r.Context(), shopID, req.Item.Descriptor(), *req.Price)
	} else {
		stock := domain.UnlimitedStock
		if req.Stock != nil {
			stock = *req.Stock
		}
		listing, err = h.svc.AddListing(r.Context(), shopID, shop.AddListingRequest{
			Item:      req.Item.Descriptor(),
			BuyPrice:  *req.BuyPrice,
			SellPrice: *req.SellPrice,
			Currency:  req.Currency,
			Stock:     stock,
		})
	}
	if err != nil {
		respondServiceError(w, r, "Create listing", err)
		return
	}
	respondJSON(w, http.StatusCreated, NewListingResponse(listing))
}

// HandleGet returns one listing
// @Summary Get listing
// @Tags listings
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param listingID path string true "Listing ID"
// @Success 200 {object} ListingResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shops/{shopID}/listings/{listingID} [get]
func (h *ListingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	shopID, listingID, ok := listingParams(w, r)
	if !ok {
		return
	}

	listing, err := h.svc.GetListing(r.Context(), shopID, listingID)
	if err != nil {
		respondServiceError(w, r, "Get listing", err)
		return
	}
	respondJSON(w, http.StatusOK, NewListingResponse(listing))
}

// HandleDelete removes a listing
// @Summary Remove listing
// @Tags listings
// @Param shopID path string true "Shop ID"
// @Param listingID path string true "Listing ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shops/{shopID}/listings/{listingID} [delete]
func (h *ListingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	shopID, listingID, ok := listingParams(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveListing(r.Context(), shopID, listingID); err != nil {
		respondServiceError(w, r, "Remove listing", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdatePrices reprices a listing
// @Summary Update listing prices
// @Tags listings
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param listingID path string true "Listing ID"
// @Param request body UpdatePricesRequest true "Prices"
// @Success 200 {object} ListingResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/shops/{shopID}/listings/{listingID}/prices [put]
func (h *ListingHandler) HandleUpdatePrices(w http.ResponseWriter, r *http.Request) {
	shopID, listingID, ok := listingParams(w, r)
	if !ok {
		return
	}

	var req UpdatePricesRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update prices"); err != nil {
		return
	}

	listing, err := h.svc.UpdatePrices(r.Context(), shopID, listingID, shop.PriceUpdate{
		Price:     req.Price,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
	})
	if err != nil {
		respondServiceError(w, r, "Update prices", err)
		return
	}
	respondJSON(w, http.StatusOK, NewListingResponse(listing))
}

// HandleSetCurrency changes the currency of a listing
// @Summary Set listing currency
// @Tags listings
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param listingID path string true "Listing ID"
// @Param request body SetCurrencyRequest true "Currency"
// @Success 200 {object} ListingResponse
// @Router /api/v1/shops/{shopID}/listings/{listingID}/currency [put]
func (h *ListingHandler) HandleSetCurrency(w http.ResponseWriter, r *http.Request) {
	shopID, listingID, ok := listingParams(w, r)
	if !ok {
		return
	}

	var req SetCurrencyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set currency"); err != nil {
		return
	}

	listing, err := h.svc.SetCurrency(r.Context(), shopID, listingID, req.Currency)
	if err != nil {
		respondServiceError(w, r, "Set currency", err)
		return
	}
	respondJSON(w, http.StatusOK, NewListingResponse(listing))
}

// HandleRestock changes the stock of a listing
// @Summary Restock listing
// @Description Adding to an unlimited listing leaves it unchanged and reports "unlimited". A negative add larger than the finite stock is rejected.
// @Tags listings
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param listingID path string true "Listing ID"
// @Param request body RestockRequest true "Stock change"
// @Success 200 {object} RestockResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/shops/{shopID}/listings/{listingID}/stock [post]
func (h *ListingHandler) HandleRestock(w http.ResponseWriter, r *http.Request) {
	shopID, listingID, ok := listingParams(w, r)
	if !ok {
		return
	}

	var req RestockRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Restock"); err != nil {
		return
	}

	listing, result, err := h.svc.Restock(r.Context(), shopID, listingID, shop.RestockRequest{Add: req.Add, Set: req.Set})
	if err != nil {
		respondServiceError(w, r, "Restock", err)
		return
	}
	respondJSON(w, http.StatusOK, RestockResponse{
		Listing: NewListingResponse(listing),
		Result:  result.Kind.String(),
	})
}

// HandleMatch finds the listing that trades the held item
// @Summary Match held item
// @Description Resolves a held item to the shop listing with the same material and metadata
// @Tags listings
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param request body ItemRequest true "Held item"
// @Success 200 {object} ListingResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shops/{shopID}/match [post]
func (h *ListingHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	shopID, ok := URLParamUUID(w, r, "shopID")
	if !ok {
		return
	}

	var req ItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Match item"); err != nil {
		return
	}

	held := req.Descriptor()
	listing, err := h.svc.FindMatching(r.Context(), shopID, &held)
	if err != nil {
		respondServiceError(w, r, "Match item", err)
		return
	}
	respondJSON(w, http.StatusOK, NewListingResponse(listing))
}

// HandleTrades returns the recent trades of a listing, newest first
// @Summary Listing trade history
// @Tags listings
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param listingID path string true "Listing ID"
// @Param limit query int false "Maximum number of trades"
// @Success 200 {array} domain.Trade
// @Router /api/v1/shops/{shopID}/listings/{listingID}/trades [get]
func (h *ListingHandler) HandleTrades(w http.ResponseWriter, r *http.Request) {
	shopID, listingID, ok := listingParams(w, r)
	if !ok {
		return
	}
	limit, ok := GetIntQueryParam(r, w, "limit", shop.DefaultTradeHistoryLimit)
	if !ok {
		return
	}

	trades, err := h.svc.ListTrades(r.Context(), shopID, listingID, limit)
	if err != nil {
		respondServiceError(w, r, "List trades", err)
		return
	}
	respondJSON(w, http.StatusOK, trades)
}
