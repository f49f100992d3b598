package handler

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CurrencyDisplayName turns a currency id like "gold_coin" into "Gold Coin"
func CurrencyDisplayName(currency string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(currency, "_", " "))
}
