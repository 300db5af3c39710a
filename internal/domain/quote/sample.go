package quote

import (
	"slices"

	"github.com/flexprice/quoter/internal/domain/catalog"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
	"github.com/samber/lo"
)

// ResolveSampleTier derives the sample granularity of planType from every
// record of that plan type, regardless of edition. Unit and multiplier come
// from the first record that sets them; MinValue is the smallest MinUsage
// seen, rescaled into samples with floor division.
//
// Returns ErrNotFound when no record has planType and ErrConfiguration
// when the records carry no positive multiplier.
func ResolveSampleTier(records []catalog.PriceRecord, planType types.PlanType) (SampleTier, error) {
	var tier SampleTier
	found := false

	for _, r := range records {
		if r.Metadata.PlanType != planType {
			continue
		}
		if !found || r.Metadata.MinUsage < tier.MinValue {
			tier.MinValue = r.Metadata.MinUsage
		}
		found = true

		if tier.Unit == "" {
			tier.Unit = r.Metadata.SampleUnit
		}
		if tier.Multiplier == 0 {
			tier.Multiplier = r.Metadata.SampleMultiplier
		}
	}

	if !found {
		return SampleTier{}, ierr.NewErrorf("no price records for plan type %s", planType).
			WithHintf("No prices are configured for %s", planType).
			WithReportableDetails(map[string]any{
				"plan_type": planType,
			}).
			Mark(ierr.ErrNotFound)
	}

	if tier.Multiplier <= 0 {
		return SampleTier{}, ierr.NewErrorf("sample multiplier for plan type %s is %d", planType, tier.Multiplier).
			WithHintf("Pricing for %s is misconfigured", planType).
			WithReportableDetails(map[string]any{
				"plan_type":         planType,
				"sample_multiplier": tier.Multiplier,
			}).
			Mark(ierr.ErrConfiguration)
	}

	tier.MinValue = floorDiv(tier.MinValue, tier.Multiplier)
	return tier, nil
}

// TierValues returns the sorted, distinct sample counts at which the tiers
// of planType end, starting at tier.MinValue. They are the selectable steps
// of a usage slider.
func TierValues(records []catalog.PriceRecord, planType types.PlanType, tier SampleTier) []int64 {
	if tier.Multiplier <= 0 {
		return nil
	}

	values := []int64{tier.MinValue}
	for _, r := range records {
		if r.Metadata.PlanType != planType || r.Metadata.MaxUsage == nil {
			continue
		}
		v := floorDiv(*r.Metadata.MaxUsage, tier.Multiplier)
		if v >= tier.MinValue {
			values = append(values, v)
		}
	}

	values = lo.Uniq(values)
	slices.Sort(values)
	return values
}

// RecommendedNumber returns the first value whose absolute usage
// (value * multiplier) exceeds recommended. When none does the last value
// is returned, and 0 when values is empty.
func RecommendedNumber(recommended, multiplier int64, values []int64) int64 {
	if len(values) == 0 {
		return 0
	}
	if v, ok := lo.Find(values, func(v int64) bool {
		if multiplier <= 0 {
			return v*multiplier > recommended
		}
		// v*multiplier > recommended without overflowing
		return v > floorDiv(recommended, multiplier)
	}); ok {
		return v
	}
	return values[len(values)-1]
}

// floorDiv divides rounding towards negative infinity. d must be positive.
func floorDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}
