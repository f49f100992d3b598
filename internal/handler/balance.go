package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FrizzlenShop_Go/internal/economy"
)

// BalanceResponse reports a player's balance in one currency
type BalanceResponse struct {
	PlayerID        string  `json:"player_id"`
	Currency        string  `json:"currency"`
	CurrencyDisplay string  `json:"currency_display"`
	Balance         float64 `json:"balance"`
}

// DepositRequest credits a player's balance
type DepositRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// BalanceHandler serves player balances
type BalanceHandler struct {
	svc economy.Service
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(svc economy.Service) *BalanceHandler {
	return &BalanceHandler{svc: svc}
}

// HandleGetBalance returns a player's balance
// @Summary Get balance
// @Tags balances
// @Produce json
// @Param playerID path string true "Player ID"
// @Param currency path string true "Currency"
// @Success 200 {object} BalanceResponse
// @Router /api/v1/players/{playerID}/balances/{currency} [get]
func (h *BalanceHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	playerID, currency, ok := balanceParams(w, r)
	if !ok {
		return
	}

	balance, err := h.svc.GetBalance(r.Context(), playerID, currency)
	if err != nil {
		respondServiceError(w, r, "Get balance", err)
		return
	}
	respondJSON(w, http.StatusOK, newBalanceResponse(playerID, currency, balance))
}

// HandleDeposit credits a player's balance
// @Summary Deposit
// @Tags balances
// @Accept json
// @Produce json
// @Param playerID path string true "Player ID"
// @Param currency path string true "Currency"
// @Param request body DepositRequest true "Amount"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/players/{playerID}/balances/{currency} [post]
func (h *BalanceHandler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	playerID, currency, ok := balanceParams(w, r)
	if !ok {
		return
	}

	var req DepositRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Deposit"); err != nil {
		return
	}

	balance, err := h.svc.Deposit(r.Context(), playerID, currency, req.Amount)
	if err != nil {
		respondServiceError(w, r, "Deposit", err)
		return
	}
	respondJSON(w, http.StatusOK, newBalanceResponse(playerID, currency, balance))
}

func balanceParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	playerID := chi.URLParam(r, "playerID")
	currency := chi.URLParam(r, "currency")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidPathParamFmt, "playerID"))
		return "", "", false
	}
	if err := GetValidator().ValidateVar(currency, "required,max=32,currency"); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidPathParamFmt, "currency"))
		return "", "", false
	}
	return playerID, currency, true
}

func newBalanceResponse(playerID, currency string, balance float64) BalanceResponse {
	return BalanceResponse{
		PlayerID:        playerID,
		Currency:        currency,
		CurrencyDisplay: CurrencyDisplayName(currency),
		Balance:         balance,
	}
}
