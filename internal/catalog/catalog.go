// Package catalog loads shop listings from seed files and syncs them into storage.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
	"github.com/osse101/FrizzlenShop_Go/internal/logger"
	"github.com/osse101/FrizzlenShop_Go/internal/repository"
	"github.com/osse101/FrizzlenShop_Go/internal/validation"
)

// SchemaName is the name the embedded catalog schema is registered under
const SchemaName = "catalog.schema.json"

// Supported file formats
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

//go:embed schema/catalog.schema.json
var catalogSchema []byte

// Entry is one listing of a catalog file. An entry either carries a single
// price or an explicit buy/sell pair with optional currency and stock.
type Entry struct {
	ID              string         `json:"id,omitempty"`
	Material        string         `json:"material"`
	DisplayName     *string        `json:"display_name,omitempty"`
	Lore            []string       `json:"lore,omitempty"`
	Enchantments    map[string]int `json:"enchantments,omitempty"`
	Damageable      bool           `json:"damageable,omitempty"`
	Damage          *int           `json:"damage,omitempty"`
	CustomModelData *int           `json:"custom_model_data,omitempty"`
	Price           *float64       `json:"price,omitempty"`
	BuyPrice        *float64       `json:"buy_price,omitempty"`
	SellPrice       *float64       `json:"sell_price,omitempty"`
	Currency        string         `json:"currency,omitempty"`
	Stock           *int           `json:"stock,omitempty"`
}

// Catalog is the parsed content of a seed file
type Catalog struct {
	ShopID   string  `json:"shop_id"`
	Listings []Entry `json:"listings"`
}

// SyncResult counts what Sync did
type SyncResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Loader parses and validates catalog files
type Loader struct {
	validator validation.SchemaValidator
}

// NewLoader creates a loader with the embedded catalog schema registered
func NewLoader() (*Loader, error) {
	v := validation.NewSchemaValidator()
	if err := v.RegisterSchema(SchemaName, catalogSchema); err != nil {
		return nil, fmt.Errorf("failed to register catalog schema: %w", err)
	}
	return &Loader{validator: v}, nil
}

// LoadFile reads a catalog, picking the format from the file extension
func (l *Loader) LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cat, err := l.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes data in the given format and validates it against the catalog schema.
// TOML documents are converted to JSON first so both formats share one schema.
func (l *Loader) Parse(data []byte, format string) (*Catalog, error) {
	switch format {
	case FormatJSON:
	case FormatTOML:
		var doc map[string]interface{}
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert TOML: %w", err)
		}
		data = converted
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	if err := l.validator.ValidateBytes(data, SchemaName); err != nil {
		return nil, err
	}

	var cat Catalog
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &cat, nil
}

// Listings builds the domain listings of a catalog. Entries without an id get
// one derived from the shop and their position, so reseeding the same file is idempotent.
func (c *Catalog) Listings() ([]*domain.ShopListing, error) {
	shopID, err := uuid.Parse(c.ShopID)
	if err != nil {
		return nil, fmt.Errorf("invalid shop_id %q: %w", c.ShopID, domain.ErrInvalidInput)
	}
	owner := uuid.NullUUID{UUID: shopID, Valid: true}

	listings := make([]*domain.ShopListing, 0, len(c.Listings))
	for i, e := range c.Listings {
		id, err := e.listingID(shopID, i)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		if e.Price != nil {
			listings = append(listings, domain.RestoreSimple(id, owner, e.item(), *e.Price))
			continue
		}

		currency := e.Currency
		if currency == "" {
			currency = domain.DefaultCurrency
		}
		stock := domain.UnlimitedStock
		if e.Stock != nil {
			stock = *e.Stock
		}
		listing, err := domain.NewValidated(domain.ListingParams{
			ID:        id,
			ShopID:    owner,
			Item:      e.item(),
			BuyPrice:  deref(e.BuyPrice),
			SellPrice: deref(e.SellPrice),
			Currency:  currency,
			Stock:     stock,
		})
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// Sync inserts catalog listings that are not stored yet. Existing listings are
// left untouched so runtime price and stock changes survive a restart.
func Sync(ctx context.Context, repo repository.Listing, cat *Catalog) (SyncResult, error) {
	log := logger.FromContext(ctx)

	listings, err := cat.Listings()
	if err != nil {
		return SyncResult{}, err
	}

	var res SyncResult
	for _, listing := range listings {
		_, err := repo.GetListing(ctx, listing.ID())
		switch {
		case err == nil:
			res.Skipped++
			continue
		case !errors.Is(err, domain.ErrListingNotFound):
			return res, fmt.Errorf("failed to look up listing %s: %w", listing.ID(), err)
		}

		if err := repo.SaveListing(ctx, listing); err != nil {
			return res, fmt.Errorf("failed to save listing %s: %w", listing.ID(), err)
		}
		res.Inserted++
	}

	log.Info("Catalog synced", "shop_id", cat.ShopID, "inserted", res.Inserted, "skipped", res.Skipped)
	return res, nil
}

func (e Entry) listingID(shopID uuid.UUID, index int) (uuid.UUID, error) {
	if e.ID == "" {
		return uuid.NewSHA1(shopID, []byte(fmt.Sprintf("%d:%s", index, e.Material))), nil
	}
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", e.ID, domain.ErrInvalidInput)
	}
	return id, nil
}

func (e Entry) item() domain.ItemDescriptor {
	return domain.NewItemDescriptor(e.Material, domain.ItemMeta{
		DisplayName:     e.DisplayName,
		Lore:            e.Lore,
		Enchantments:    e.Enchantments,
		Damageable:      e.Damageable,
		Damage:          e.Damage,
		CustomModelData: e.CustomModelData,
	})
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
