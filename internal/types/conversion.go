package types

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MinorToMajor converts an amount in minor units of currency to a decimal
// major currency amount ex 9000 usd -> 90. Zero decimal currencies ex jpy
// are already in major units. Zero stays an exact zero.
func MinorToMajor(amount int64, currency string) decimal.Decimal {
	if amount == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(amount).Shift(-GetCurrencyPrecision(currency))
}

// ParseInt parses s as a base 10 integer after trimming whitespace. Decimal
// strings with only a zero fraction ex "1000.0" are accepted.
func ParseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, strconv.ErrSyntax
	}
	return d.IntPart(), nil
}

// ParseIntOrZero parses s and reports whether parsing succeeded. Malformed
// input yields 0, which keeps pricing computable but may misprice silently;
// callers decide whether to surface ok=false.
func ParseIntOrZero(s string) (v int64, ok bool) {
	v, err := ParseInt(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
