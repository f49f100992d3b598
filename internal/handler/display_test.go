package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyDisplayName(t *testing.T) {
	tests := map[string]string{
		"coin":       "Coin",
		"gem_shard":  "Gem Shard",
		"":           "",
		"token_2024": "Token 2024",
	}
	for in, want := range tests {
		assert.Equal(t, want, CurrencyDisplayName(in), in)
	}
}
