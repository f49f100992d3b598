package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinClock fixes nowMillis for the duration of a test
func pinClock(t *testing.T, ms int64) *int64 {
	t.Helper()
	current := ms
	orig := nowMillis
	nowMillis = func() int64 { return current }
	t.Cleanup(func() { nowMillis = orig })
	return &current
}

func diamondSword() ItemDescriptor {
	return ItemDescriptor{Material: "DIAMOND_SWORD"}
}

func TestNew(t *testing.T) {
	pinClock(t, 1000)

	l := New(diamondSword(), 100, 60, "gems", 12)

	assert.NotEqual(t, uuid.Nil, l.ID())
	assert.False(t, l.ShopID().Valid, "fresh listing is not attached to a shop")
	assert.Equal(t, 100.0, l.BuyPrice())
	assert.Equal(t, 100.0, l.Price())
	assert.Equal(t, 60.0, l.SellPrice())
	assert.Equal(t, "gems", l.Currency())
	assert.Equal(t, 12, l.Stock())
	assert.Zero(t, l.SoldCount())
	assert.Zero(t, l.BoughtCount())
	assert.Equal(t, int64(1000), l.LastPriceChange())
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New(diamondSword(), 1, 1, "coin", 1)
	b := New(diamondSword(), 1, 1, "coin", 1)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRestore_PreservesIdentifiers(t *testing.T) {
	id := uuid.New()
	shopID := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	a := Restore(id, shopID, diamondSword(), 10, 8, "coin", 5)
	b := Restore(id, shopID, diamondSword(), 20, 16, "coin", 7)

	assert.Equal(t, id, a.ID())
	assert.Equal(t, id, b.ID())
	assert.Equal(t, shopID, a.ShopID())
	assert.Equal(t, shopID, b.ShopID())
}

func TestRestore_ResetsHistory(t *testing.T) {
	pinClock(t, 5000)

	l := Restore(uuid.New(), uuid.NullUUID{}, diamondSword(), 10, 8, "coin", 5)

	assert.Zero(t, l.SoldCount())
	assert.Zero(t, l.BoughtCount())
	assert.Equal(t, int64(5000), l.LastPriceChange())
}

func TestRestoreSimple(t *testing.T) {
	id := uuid.New()
	shopID := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	l := RestoreSimple(id, shopID, diamondSword(), 100.0)

	assert.Equal(t, id, l.ID())
	assert.Equal(t, shopID, l.ShopID())
	assert.Equal(t, 100.0, l.BuyPrice())
	assert.Equal(t, 80.0, l.SellPrice())
	assert.Equal(t, "coin", l.Currency())
	assert.Equal(t, UnlimitedStock, l.Stock())
}

func TestItem_IsCopyIsolated(t *testing.T) {
	name := "Excalibur"
	dmg := 3
	src := ItemDescriptor{
		Material: "DIAMOND_SWORD",
		Meta: &ItemMeta{
			DisplayName:  &name,
			Lore:         []string{"sharp"},
			Enchantments: map[string]int{"sharpness": 5},
			Damageable:   true,
			Damage:       &dmg,
		},
	}
	l := New(src, 1, 1, "coin", 1)

	t.Run("constructor input", func(t *testing.T) {
		name = "Changed"
		src.Meta.Lore[0] = "blunt"
		src.Meta.Enchantments["sharpness"] = 1
		dmg = 99

		got := l.Item()
		assert.Equal(t, "Excalibur", *got.Meta.DisplayName)
		assert.Equal(t, []string{"sharp"}, got.Meta.Lore)
		assert.Equal(t, 5, got.Meta.Enchantments["sharpness"])
		assert.Equal(t, 3, *got.Meta.Damage)
	})

	t.Run("returned value", func(t *testing.T) {
		got := l.Item()
		got.Material = "STICK"
		*got.Meta.DisplayName = "Mutated"
		got.Meta.Lore = append(got.Meta.Lore, "extra")
		got.Meta.Enchantments["unbreaking"] = 3
		*got.Meta.Damage = 42

		again := l.Item()
		assert.Equal(t, "DIAMOND_SWORD", again.Material)
		assert.Equal(t, "Excalibur", *again.Meta.DisplayName)
		assert.Len(t, again.Meta.Lore, 1)
		assert.NotContains(t, again.Meta.Enchantments, "unbreaking")
		assert.Equal(t, 3, *again.Meta.Damage)
	})
}

func TestPriceSetters(t *testing.T) {
	t.Run("SetBuyPrice", func(t *testing.T) {
		clock := pinClock(t, 1)
		l := New(diamondSword(), 10, 5, "coin", 1)

		*clock = 2
		l.SetBuyPrice(42.5)

		assert.Equal(t, 42.5, l.BuyPrice())
		assert.Equal(t, 42.5, l.Price())
		assert.Equal(t, 5.0, l.SellPrice(), "sell price is independent")
		assert.Equal(t, int64(2), l.LastPriceChange())
	})

	t.Run("SetBuyPrice accepts negative", func(t *testing.T) {
		l := New(diamondSword(), 10, 5, "coin", 1)
		l.SetBuyPrice(-3)
		assert.Equal(t, -3.0, l.BuyPrice())
	})

	t.Run("SetSellPrice", func(t *testing.T) {
		clock := pinClock(t, 1)
		l := New(diamondSword(), 10, 5, "coin", 1)

		*clock = 3
		l.SetSellPrice(7)

		assert.Equal(t, 7.0, l.SellPrice())
		assert.Equal(t, 10.0, l.BuyPrice())
		assert.Equal(t, int64(3), l.LastPriceChange())
	})

	t.Run("SetPrice overwrites manual sell price", func(t *testing.T) {
		clock := pinClock(t, 1)
		l := New(diamondSword(), 10, 5, "coin", 1)
		l.SetSellPrice(9)

		*clock = 4
		l.SetPrice(50)

		assert.Equal(t, 50.0, l.BuyPrice())
		assert.Equal(t, 50*DefaultSellRatio, l.SellPrice())
		assert.Equal(t, int64(4), l.LastPriceChange())
	})

	t.Run("SetCurrency does not touch timestamp", func(t *testing.T) {
		clock := pinClock(t, 1)
		l := New(diamondSword(), 10, 5, "coin", 1)

		*clock = 99
		l.SetCurrency("tokens")

		assert.Equal(t, "tokens", l.Currency())
		assert.Equal(t, int64(1), l.LastPriceChange())
	})
}

func TestStockOperations(t *testing.T) {
	t.Run("SetStock does not clamp", func(t *testing.T) {
		l := New(diamondSword(), 1, 1, "coin", 5)
		l.SetStock(-7)
		assert.Equal(t, -7, l.Stock())
	})

	t.Run("AddStock on unlimited", func(t *testing.T) {
		l := New(diamondSword(), 1, 1, "coin", UnlimitedStock)
		assert.Equal(t, -1, l.AddStock(10))
		assert.Equal(t, -1, l.AddStock(-10))
		assert.Equal(t, UnlimitedStock, l.Stock())
	})

	t.Run("AddStock on finite", func(t *testing.T) {
		l := New(diamondSword(), 1, 1, "coin", 5)
		assert.Equal(t, 8, l.AddStock(3))
		assert.Equal(t, 8, l.Stock())
	})

	t.Run("AddStock negative has no floor", func(t *testing.T) {
		l := New(diamondSword(), 1, 1, "coin", 2)
		assert.Equal(t, -3, l.AddStock(-5))
		assert.Equal(t, -3, l.Stock())
	})

	t.Run("RemoveStock on unlimited", func(t *testing.T) {
		l := New(diamondSword(), 1, 1, "coin", UnlimitedStock)
		assert.Equal(t, -1, l.RemoveStock(1000))
		assert.Equal(t, UnlimitedStock, l.Stock())
	})

	t.Run("RemoveStock within stock", func(t *testing.T) {
		l := New(diamondSword(), 1, 1, "coin", 10)
		assert.Equal(t, 6, l.RemoveStock(4))
		assert.Equal(t, 6, l.Stock())
		assert.Equal(t, 0, l.RemoveStock(6))
		assert.Equal(t, 0, l.Stock())
	})

	t.Run("RemoveStock insufficient is idempotent", func(t *testing.T) {
		l := New(diamondSword(), 1, 1, "coin", 3)
		assert.Equal(t, -1, l.RemoveStock(4))
		assert.Equal(t, 3, l.Stock())
		assert.Equal(t, -1, l.RemoveStock(4))
		assert.Equal(t, 3, l.Stock())
	})
}

func TestHasStock(t *testing.T) {
	tests := []struct {
		name   string
		stock  int
		amount int
		want   bool
	}{
		{"unlimited", UnlimitedStock, 1_000_000, true},
		{"exact", 5, 5, true},
		{"more than enough", 5, 1, true},
		{"zero amount on empty", 0, 0, true},
		{"not enough", 5, 6, false},
		{"empty", 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(diamondSword(), 1, 1, "coin", tt.stock)
			assert.Equal(t, tt.want, l.HasStock(tt.amount))
		})
	}
}

func TestCounters(t *testing.T) {
	l := New(diamondSword(), 1, 1, "coin", 1)

	l.IncrementSoldCount(5)
	l.IncrementSoldCount(3)
	assert.Equal(t, 8, l.SoldCount())

	l.IncrementBoughtCount(2)
	l.IncrementBoughtCount(-1)
	assert.Equal(t, 1, l.BoughtCount(), "negative increments are accepted")
}

func TestCalculatePrices(t *testing.T) {
	l := New(diamondSword(), 12.5, 10, "coin", 1)

	for _, n := range []int{0, 1, 3, 64} {
		assert.Equal(t, l.BuyPrice()*float64(n), l.CalculateBuyPrice(n))
		assert.Equal(t, l.SellPrice()*float64(n), l.CalculateSellPrice(n))
	}
	assert.Zero(t, l.CalculateBuyPrice(0))
	assert.Zero(t, l.CalculateSellPrice(0))
}

func TestSnapshotRoundTrip(t *testing.T) {
	pinClock(t, 777)
	shopID := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	l := Restore(uuid.New(), shopID, diamondSword(), 10, 8, "coin", 4)
	l.IncrementSoldCount(3)
	l.IncrementBoughtCount(2)

	snap := l.Snapshot()
	restored := FromSnapshot(snap)

	require.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, 3, restored.SoldCount())
	assert.Equal(t, 2, restored.BoughtCount())
	assert.Equal(t, int64(777), restored.LastPriceChange())
}

func TestNewValidated(t *testing.T) {
	valid := ListingParams{
		Item:      diamondSword(),
		BuyPrice:  10,
		SellPrice: 8,
		Currency:  "coin",
		Stock:     UnlimitedStock,
	}

	t.Run("accepts valid params", func(t *testing.T) {
		l, err := NewValidated(valid)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, l.ID())
		assert.Equal(t, 10.0, l.BuyPrice())
	})

	t.Run("keeps supplied id", func(t *testing.T) {
		p := valid
		p.ID = uuid.New()
		l, err := NewValidated(p)
		require.NoError(t, err)
		assert.Equal(t, p.ID, l.ID())
	})

	invalid := map[string]func(p *ListingParams){
		"negative buy price":   func(p *ListingParams) { p.BuyPrice = -1 },
		"negative sell price":  func(p *ListingParams) { p.SellPrice = -0.5 },
		"stock below sentinel": func(p *ListingParams) { p.Stock = -2 },
		"missing currency":     func(p *ListingParams) { p.Currency = "" },
		"missing material":     func(p *ListingParams) { p.Item.Material = "" },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			p := valid
			mutate(&p)
			l, err := NewValidated(p)
			assert.Nil(t, l)
			assert.ErrorIs(t, err, ErrInvalidListing)
		})
	}
}
