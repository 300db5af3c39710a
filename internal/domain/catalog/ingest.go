package catalog

import (
	"fmt"
	"strings"
	"time"

	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
)

// IngestOptions controls how tolerant ingestion is of malformed records
type IngestOptions struct {
	// Strict rejects the whole catalog on the first malformed record. When
	// false, malformed numeric metadata is coerced to 0 and records without
	// a plan type are skipped; both are reported as warnings.
	Strict bool

	// FetchedAt stamps the resulting snapshot
	FetchedAt time.Time
}

// IngestWarning describes a record that was normalised or skipped
type IngestWarning struct {
	PriceID   string                 `json:"price_id"`
	Frequency types.PaymentFrequency `json:"payment_frequency"`
	Field     string                 `json:"field"`
	Value     string                 `json:"value,omitempty"`
	Reason    string                 `json:"reason"`
	Skipped   bool                   `json:"skipped"`
}

func (w IngestWarning) String() string {
	return fmt.Sprintf("%s %s %s=%q: %s", w.Frequency, w.PriceID, w.Field, w.Value, w.Reason)
}

// Ingest validates and normalises a raw catalog into an immutable snapshot.
// Record order within each frequency is preserved.
func Ingest(module types.ModuleType, raw *RawCatalog, opts IngestOptions) (*Catalog, []IngestWarning, error) {
	if err := module.Validate(); err != nil {
		return nil, nil, err
	}
	if raw == nil {
		return nil, nil, ierr.NewError("raw catalog is nil").
			WithHint("Price catalog is empty").
			Mark(ierr.ErrValidation)
	}

	var warnings []IngestWarning

	monthly, w, err := ingestRecords(raw.Monthly, types.PaymentFrequencyMonthly, opts)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, w...)

	yearly, w, err := ingestRecords(raw.Yearly, types.PaymentFrequencyYearly, opts)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, w...)

	return New(module, monthly, yearly, opts.FetchedAt), warnings, nil
}

func ingestRecords(raw []RawPrice, frequency types.PaymentFrequency, opts IngestOptions) ([]PriceRecord, []IngestWarning, error) {
	records := make([]PriceRecord, 0, len(raw))
	var warnings []IngestWarning

	for _, rp := range raw {
		record, w, err := ingestRecord(rp, frequency, opts.Strict)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, w...)
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, warnings, nil
}

func ingestRecord(rp RawPrice, frequency types.PaymentFrequency, strict bool) (*PriceRecord, []IngestWarning, error) {
	var warnings []IngestWarning

	reject := func(field, value, reason string) (*PriceRecord, []IngestWarning, error) {
		if strict {
			return nil, nil, malformed(rp.PriceID, frequency, field, value, reason)
		}
		warnings = append(warnings, IngestWarning{
			PriceID:   rp.PriceID,
			Frequency: frequency,
			Field:     field,
			Value:     value,
			Reason:    reason,
			Skipped:   true,
		})
		return nil, warnings, nil
	}

	planType := types.PlanType(strings.TrimSpace(rp.MetaData[MetaKeyType]))
	if planType == "" {
		return reject(MetaKeyType, "", "record has no plan type")
	}
	if rp.UnitAmount < 0 {
		return reject("unitAmount", fmt.Sprint(rp.UnitAmount), "unit amount is negative")
	}

	currency := strings.ToLower(strings.TrimSpace(rp.Currency))
	if currency == "" {
		currency = types.DEFAULT_CURRENCY
	}

	meta := Metadata{
		PlanType:   planType,
		Edition:    types.Edition(strings.ToUpper(strings.TrimSpace(rp.MetaData[MetaKeyEdition]))),
		SampleUnit: strings.TrimSpace(rp.MetaData[MetaKeySampleUnit]),
	}

	// parseNumeric returns (value, present). Malformed values become 0.
	parseNumeric := func(key string) (int64, bool, error) {
		value, ok := rp.MetaData[key]
		if !ok || strings.TrimSpace(value) == "" {
			return 0, false, nil
		}
		v, parsed := types.ParseIntOrZero(value)
		if !parsed {
			if strict {
				return 0, true, malformed(rp.PriceID, frequency, key, value, "value is not numeric")
			}
			warnings = append(warnings, IngestWarning{
				PriceID:   rp.PriceID,
				Frequency: frequency,
				Field:     key,
				Value:     value,
				Reason:    "value is not numeric, coerced to 0",
			})
		}
		return v, true, nil
	}

	multiplier, _, err := parseNumeric(MetaKeySampleMultiplier)
	if err != nil {
		return nil, nil, err
	}
	meta.SampleMultiplier = multiplier

	minUsage, _, err := parseNumeric(MetaKeyMin)
	if err != nil {
		return nil, nil, err
	}
	meta.MinUsage = minUsage

	maxUsage, hasMax, err := parseNumeric(MetaKeyMax)
	if err != nil {
		return nil, nil, err
	}
	if hasMax {
		meta.MaxUsage = &maxUsage
	}

	return &PriceRecord{
		PriceID:    rp.PriceID,
		Currency:   currency,
		UnitAmount: rp.UnitAmount,
		LookupKey:  rp.LookupKey,
		Frequency:  frequency,
		Metadata:   meta,
	}, warnings, nil
}

func malformed(priceID string, frequency types.PaymentFrequency, field, value, reason string) error {
	return ierr.NewErrorf("malformed catalog record %s: %s", priceID, reason).
		WithHintf("Price %s has invalid %s", priceID, field).
		WithReportableDetails(map[string]any{
			"price_id":          priceID,
			"payment_frequency": frequency,
			"field":             field,
			"value":             value,
		}).
		Mark(ierr.ErrValidation)
}
