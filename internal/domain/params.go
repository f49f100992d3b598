package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var paramsValidator = validator.New()

// ListingParams is the input of NewValidated, the strict alternative to New and Restore.
// A zero ID asks for a fresh one.
type ListingParams struct {
	ID        uuid.UUID      `json:"id"`
	ShopID    uuid.NullUUID  `json:"shop_id"`
	Item      ItemDescriptor `json:"item"`
	BuyPrice  float64        `json:"buy_price" validate:"gte=0"`
	SellPrice float64        `json:"sell_price" validate:"gte=0"`
	Currency  string         `json:"currency" validate:"required"`
	Stock     int            `json:"stock" validate:"gte=-1"`
}

// NewValidated builds a listing after rejecting negative prices, stock below
// UnlimitedStock and missing currency or material.
func NewValidated(p ListingParams) (*ShopListing, error) {
	if err := paramsValidator.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidListing, describeValidation(err))
	}
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Restore(id, p.ShopID, p.Item, p.BuyPrice, p.SellPrice, p.Currency, p.Stock), nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}
