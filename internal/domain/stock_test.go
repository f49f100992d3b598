package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryRemoveStock(t *testing.T) {
	t.Run("unlimited", func(t *testing.T) {
		l := New(ItemDescriptor{Material: "STONE"}, 1, 1, "coin", UnlimitedStock)
		res := l.TryRemoveStock(5)
		assert.True(t, res.Unlimited())
		assert.Equal(t, StockUnlimited, res.Kind)
		assert.Equal(t, UnlimitedStock, l.Stock())
	})

	t.Run("insufficient", func(t *testing.T) {
		l := New(ItemDescriptor{Material: "STONE"}, 1, 1, "coin", 2)
		res := l.TryRemoveStock(3)
		assert.True(t, res.Insufficient())
		assert.Equal(t, 2, res.Stock, "reports the untouched stock")
		assert.Equal(t, 2, l.Stock())
	})

	t.Run("updated", func(t *testing.T) {
		l := New(ItemDescriptor{Material: "STONE"}, 1, 1, "coin", 9)
		res := l.TryRemoveStock(4)
		n, ok := res.Updated()
		assert.True(t, ok)
		assert.Equal(t, 5, n)
		assert.Equal(t, 5, l.Stock())
	})
}

func TestTryAddStock(t *testing.T) {
	unlimited := New(ItemDescriptor{Material: "STONE"}, 1, 1, "coin", UnlimitedStock)
	assert.True(t, unlimited.TryAddStock(3).Unlimited())

	finite := New(ItemDescriptor{Material: "STONE"}, 1, 1, "coin", 1)
	n, ok := finite.TryAddStock(3).Updated()
	assert.True(t, ok)
	assert.Equal(t, 4, n)
}

func TestStockResult_Legacy(t *testing.T) {
	assert.Equal(t, -1, StockResult{Kind: StockUnlimited, Stock: UnlimitedStock}.Legacy())
	assert.Equal(t, -1, StockResult{Kind: StockInsufficient, Stock: 3}.Legacy())
	assert.Equal(t, 3, StockResult{Kind: StockUpdated, Stock: 3}.Legacy())
}

func TestStockResultKind_String(t *testing.T) {
	assert.Equal(t, "updated", StockUpdated.String())
	assert.Equal(t, "unlimited", StockUnlimited.String())
	assert.Equal(t, "insufficient", StockInsufficient.String())
	assert.Equal(t, "unknown", StockResultKind(42).String())
}
