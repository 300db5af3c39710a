package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DEFAULT_CURRENCY is used when a catalog record does not carry one
const DEFAULT_CURRENCY = "usd"

// CurrencyConfig describes how amounts in a currency are displayed
type CurrencyConfig struct {
	Symbol    string
	Precision int32
}

// CURRENCY_CONFIG maps lowercase 3 digit ISO currency codes to their display config
var CURRENCY_CONFIG = map[string]CurrencyConfig{
	"usd": {Symbol: "$", Precision: 2},
	"eur": {Symbol: "€", Precision: 2},
	"gbp": {Symbol: "£", Precision: 2},
	"aud": {Symbol: "AU$", Precision: 2},
	"cad": {Symbol: "CA$", Precision: 2},
	"inr": {Symbol: "₹", Precision: 2},
	"jpy": {Symbol: "¥", Precision: 0},
	"krw": {Symbol: "₩", Precision: 0},
}

// GetCurrencyConfig returns the config for code, falling back to the
// uppercased code as symbol and two decimal places.
func GetCurrencyConfig(code string) CurrencyConfig {
	if cfg, ok := CURRENCY_CONFIG[strings.ToLower(code)]; ok {
		return cfg
	}
	return CurrencyConfig{Symbol: strings.ToUpper(code), Precision: 2}
}

// GetCurrencySymbol returns the symbol for a given currency code
func GetCurrencySymbol(code string) string {
	return GetCurrencyConfig(code).Symbol
}

// GetCurrencyPrecision returns the number of decimal places shown for code
func GetCurrencyPrecision(code string) int32 {
	return GetCurrencyConfig(code).Precision
}

// FormatDisplayAmount renders amount with the currency symbol, rounded to
// the currency precision ex $75.00
func FormatDisplayAmount(amount decimal.Decimal, currency string) string {
	cfg := GetCurrencyConfig(currency)
	return fmt.Sprintf("%s%s", cfg.Symbol, amount.StringFixed(cfg.Precision))
}
