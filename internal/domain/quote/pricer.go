package quote

import (
	"math"

	"github.com/flexprice/quoter/internal/domain/catalog"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
	"github.com/shopspring/decimal"
)

// PriceQuantityParams are the inputs of PriceQuantity
type PriceQuantityParams struct {
	// Records is the price list of PaymentFrequency
	Records          []catalog.PriceRecord
	Edition          types.Edition
	PlanType         types.PlanType
	IsSupport        bool
	PaymentFrequency types.PaymentFrequency
	Quantity         int64

	// SampleTier is set for usage dimensions priced per sample ex MAUS.
	// Nil prices the dimension flat per unit ex DEVELOPERS.
	SampleTier *SampleTier
}

// PriceQuantity matches the record pricing a quantity of one dimension and
// returns its per month unit price. A missing record yields a zero price and
// a nil Record rather than an error.
//
// For sample based dimensions the billed quantity is raised to the tier
// minimum and the record is the one whose usage range holds
// billed * multiplier. Yearly prices are divided by 12.
func PriceQuantity(params PriceQuantityParams) (PricedQuantity, error) {
	if params.Quantity < 0 {
		return PricedQuantity{}, ierr.NewError("quantity must not be negative").
			WithHintf("Quantity for %s must not be negative", params.PlanType).
			WithReportableDetails(map[string]any{
				"plan_type": params.PlanType,
				"quantity":  params.Quantity,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := params.PaymentFrequency.Validate(); err != nil {
		return PricedQuantity{}, err
	}

	result := PricedQuantity{
		BilledQuantity: params.Quantity,
		UnitPrice:      decimal.Zero,
	}

	var (
		record catalog.PriceRecord
		ok     bool
	)

	if params.SampleTier != nil {
		tier := params.SampleTier
		if tier.Multiplier <= 0 {
			return PricedQuantity{}, ierr.NewErrorf("sample multiplier for plan type %s is %d", params.PlanType, tier.Multiplier).
				WithHintf("Pricing for %s is misconfigured", params.PlanType).
				Mark(ierr.ErrConfiguration)
		}
		if result.BilledQuantity < tier.MinValue {
			result.BilledQuantity = tier.MinValue
		}
		if result.BilledQuantity > math.MaxInt64/tier.Multiplier {
			return PricedQuantity{}, ierr.NewErrorf("quantity %d of plan type %s overflows usage with multiplier %d", result.BilledQuantity, params.PlanType, tier.Multiplier).
				WithHintf("Quantity for %s is too large", params.PlanType).
				WithReportableDetails(map[string]any{
					"plan_type":  params.PlanType,
					"quantity":   result.BilledQuantity,
					"multiplier": tier.Multiplier,
				}).
				Mark(ierr.ErrValidation)
		}
		result.Usage = result.BilledQuantity * tier.Multiplier
		record, ok = matchTier(params.Records, params.Edition, params.PlanType, params.IsSupport, result.Usage)
	} else {
		record, ok = MatchPlan(params.Records, params.Edition, params.PlanType, params.IsSupport)
	}

	if !ok {
		return result, nil
	}

	result.Record = &record
	result.UnitPrice = MonthlyUnitPrice(record.UnitAmount, record.Currency, params.PaymentFrequency)
	return result, nil
}

// MonthlyUnitPrice converts a catalog amount in minor units into a per
// month price in major units. Yearly amounts are divided by 12.
func MonthlyUnitPrice(unitAmount int64, currency string, frequency types.PaymentFrequency) decimal.Decimal {
	price := types.MinorToMajor(unitAmount, currency)
	if frequency == types.PaymentFrequencyYearly && !price.IsZero() {
		price = price.Div(decimal.NewFromInt(types.MONTHS_PER_YEAR))
	}
	return price
}
