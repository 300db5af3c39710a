package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorToMajor(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		want     decimal.Decimal
	}{
		{name: "zero", amount: 0, currency: "usd", want: decimal.Zero},
		{name: "whole dollars", amount: 9000, currency: "usd", want: decimal.NewFromInt(90)},
		{name: "cents", amount: 1999, currency: "usd", want: decimal.RequireFromString("19.99")},
		{name: "single cent", amount: 1, currency: "usd", want: decimal.RequireFromString("0.01")},
		{name: "unknown currency uses two decimals", amount: 1999, currency: "", want: decimal.RequireFromString("19.99")},
		{name: "zero decimal yen", amount: 9000, currency: "jpy", want: decimal.NewFromInt(9000)},
		{name: "zero decimal won uppercase", amount: 1500, currency: "KRW", want: decimal.NewFromInt(1500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinorToMajor(tt.amount, tt.currency)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "1000", want: 1000},
		{input: " 250001 ", want: 250001},
		{input: "1000.0", want: 1000},
		{input: "1000.5", wantErr: true},
		{input: "1e3", want: 1000},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInt(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntOrZero(t *testing.T) {
	v, ok := ParseIntOrZero("not-a-number")
	assert.False(t, ok)
	assert.Equal(t, int64(0), v)

	v, ok = ParseIntOrZero("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)
}
