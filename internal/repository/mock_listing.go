package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/FrizzlenShop_Go/internal/domain"
)

// MockListing is a testify mock of Listing
type MockListing struct {
	mock.Mock
}

func (m *MockListing) SaveListing(ctx context.Context, listing *domain.ShopListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListing) GetListing(ctx context.Context, id uuid.UUID) (*domain.ShopListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopListing), args.Error(1)
}

func (m *MockListing) ListListingsByShop(ctx context.Context, shopID uuid.UUID) ([]*domain.ShopListing, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShopListing), args.Error(1)
}

func (m *MockListing) DeleteListing(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListing) GetBalance(ctx context.Context, playerID, currency string) (float64, error) {
	args := m.Called(ctx, playerID, currency)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockListing) GetTrades(ctx context.Context, listingID uuid.UUID, limit int) ([]domain.Trade, error) {
	args := m.Called(ctx, listingID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

func (m *MockListing) BeginTx(ctx context.Context) (ListingTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ListingTx), args.Error(1)
}

// MockListingTx is a testify mock of ListingTx
type MockListingTx struct {
	mock.Mock
}

func (m *MockListingTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockListingTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockListingTx) GetListingForUpdate(ctx context.Context, id uuid.UUID) (*domain.ShopListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopListing), args.Error(1)
}

func (m *MockListingTx) SaveListing(ctx context.Context, listing *domain.ShopListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingTx) AdjustBalance(ctx context.Context, playerID, currency string, delta float64) (float64, error) {
	args := m.Called(ctx, playerID, currency, delta)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockListingTx) RecordTrade(ctx context.Context, trade *domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}
