package catalog

import (
	"testing"
	"time"

	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawMAU(id string, amount int64, edition, min, max string) RawPrice {
	meta := map[string]string{
		MetaKeyType:             "MAUS",
		MetaKeyEdition:          edition,
		MetaKeySampleUnit:       "K",
		MetaKeySampleMultiplier: "1000",
		MetaKeyMin:              min,
	}
	if max != "" {
		meta[MetaKeyMax] = max
	}
	return RawPrice{PriceID: id, Currency: "USD", UnitAmount: amount, MetaData: meta}
}

func TestIngest_NormalisesRecords(t *testing.T) {
	fetchedAt := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	raw := &RawCatalog{
		Monthly: []RawPrice{
			{PriceID: "p_dev", UnitAmount: 2000, MetaData: map[string]string{MetaKeyType: "DEVELOPERS", MetaKeyEdition: "team"}},
			rawMAU("p_mau_1", 9000, "TEAM", "100000", "250000"),
			rawMAU("p_mau_2", 8000, "TEAM", "250001", ""),
		},
		Yearly: []RawPrice{
			rawMAU("p_mau_y", 90000, "TEAM", "100000", "250000"),
		},
	}

	cat, warnings, err := Ingest(types.ModuleCF, raw, IngestOptions{FetchedAt: fetchedAt})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, types.ModuleCF, cat.Module())
	assert.Equal(t, fetchedAt, cat.FetchedAt())
	assert.Equal(t, 4, cat.Len())

	monthly := cat.Monthly()
	require.Len(t, monthly, 3)
	assert.Equal(t, []string{"p_dev", "p_mau_1", "p_mau_2"}, []string{monthly[0].PriceID, monthly[1].PriceID, monthly[2].PriceID})

	dev := monthly[0]
	assert.Equal(t, types.DEFAULT_CURRENCY, dev.Currency)
	assert.Equal(t, types.EditionTeam, dev.Metadata.Edition)
	assert.Equal(t, types.PaymentFrequencyMonthly, dev.Frequency)
	assert.Nil(t, dev.Metadata.MaxUsage)

	mau := monthly[1]
	assert.Equal(t, "usd", mau.Currency)
	assert.Equal(t, int64(1000), mau.Metadata.SampleMultiplier)
	assert.Equal(t, int64(100000), mau.Metadata.MinUsage)
	require.NotNil(t, mau.Metadata.MaxUsage)
	assert.Equal(t, int64(250000), *mau.Metadata.MaxUsage)
	assert.True(t, mau.ContainsUsage(100000))
	assert.True(t, mau.ContainsUsage(250000))
	assert.False(t, mau.ContainsUsage(250001))

	unbounded := monthly[2]
	assert.True(t, unbounded.ContainsUsage(50_000_000))

	yearly := cat.Yearly()
	require.Len(t, yearly, 1)
	assert.Equal(t, types.PaymentFrequencyYearly, yearly[0].Frequency)
	assert.True(t, decimal.NewFromInt(900).Equal(yearly[0].UnitPrice()))
}

func TestIngest_LenientCoercesMalformedMetadata(t *testing.T) {
	raw := &RawCatalog{
		Monthly: []RawPrice{
			rawMAU("p_bad_min", 9000, "TEAM", "one hundred", "250000"),
			{PriceID: "p_no_type", UnitAmount: 100, MetaData: map[string]string{MetaKeyEdition: "TEAM"}},
			{PriceID: "p_negative", UnitAmount: -1, MetaData: map[string]string{MetaKeyType: "DEVELOPERS"}},
		},
	}

	cat, warnings, err := Ingest(types.ModuleCF, raw, IngestOptions{})
	require.NoError(t, err)

	monthly := cat.Monthly()
	require.Len(t, monthly, 1)
	assert.Equal(t, "p_bad_min", monthly[0].PriceID)
	assert.Equal(t, int64(0), monthly[0].Metadata.MinUsage)

	require.Len(t, warnings, 3)
	assert.Equal(t, MetaKeyMin, warnings[0].Field)
	assert.False(t, warnings[0].Skipped)
	assert.Equal(t, "p_no_type", warnings[1].PriceID)
	assert.True(t, warnings[1].Skipped)
	assert.Equal(t, "p_negative", warnings[2].PriceID)
	assert.True(t, warnings[2].Skipped)
}

func TestIngest_StrictRejectsMalformedMetadata(t *testing.T) {
	tests := []struct {
		name string
		raw  RawPrice
	}{
		{name: "non numeric min", raw: rawMAU("p1", 9000, "TEAM", "abc", "")},
		{name: "non numeric multiplier", raw: RawPrice{PriceID: "p2", MetaData: map[string]string{MetaKeyType: "MAUS", MetaKeySampleMultiplier: "k"}}},
		{name: "missing type", raw: RawPrice{PriceID: "p3", MetaData: map[string]string{}}},
		{name: "negative amount", raw: RawPrice{PriceID: "p4", UnitAmount: -5, MetaData: map[string]string{MetaKeyType: "DEVELOPERS"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Ingest(types.ModuleCF, &RawCatalog{Yearly: []RawPrice{tt.raw}}, IngestOptions{Strict: true})
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
			assert.Contains(t, err.Error(), tt.raw.PriceID)
		})
	}
}

func TestIngest_InvalidInput(t *testing.T) {
	_, _, err := Ingest(types.ModuleCF, nil, IngestOptions{})
	assert.True(t, ierr.IsValidation(err))

	_, _, err = Ingest("cd", &RawCatalog{}, IngestOptions{})
	assert.True(t, ierr.IsValidation(err))
}

func TestCatalog_RecordsAreCopies(t *testing.T) {
	cat := New(types.ModuleCI, []PriceRecord{{PriceID: "a"}}, nil, time.Time{})

	records := cat.Records(types.PaymentFrequencyMonthly)
	records[0].PriceID = "mutated"

	assert.Equal(t, "a", cat.Monthly()[0].PriceID)
	assert.Empty(t, cat.Yearly())
	assert.Nil(t, cat.Records("WEEKLY"))
}
