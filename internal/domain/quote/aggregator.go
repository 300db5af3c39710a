package quote

import (
	"fmt"

	"github.com/flexprice/quoter/internal/domain/catalog"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
	"github.com/shopspring/decimal"
)

// Validate checks the quote inputs
func (p QuoteParams) Validate() error {
	if err := p.Module.Validate(); err != nil {
		return err
	}
	if err := p.Edition.Validate(); err != nil {
		return err
	}
	if err := p.PaymentFrequency.Validate(); err != nil {
		return err
	}
	if p.Quantities.Developers < 0 || p.Quantities.MAU < 0 {
		return ierr.NewError("quantities must not be negative").
			WithHint("Quantities must not be negative").
			WithReportableDetails(map[string]any{
				"developers": p.Quantities.Developers,
				"mau":        p.Quantities.MAU,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BuildQuote prices every dimension of the module against the catalog.
// It is a pure function: the same params and catalog always produce an
// equal quote. Dimensions without a matching record degrade to a zero
// price with a warning; a misconfigured sample tier fails the quote.
func BuildQuote(params QuoteParams, cat *catalog.Catalog) (*SubscriptionQuote, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ierr.NewError("catalog is nil").
			WithHint("Price catalog is not available").
			Mark(ierr.ErrCatalogUnavailable)
	}
	if cat.Module() != params.Module {
		return nil, ierr.NewErrorf("catalog of module %s cannot price module %s", cat.Module(), params.Module).
			WithHint("Catalog does not belong to the requested module").
			Mark(ierr.ErrInvalidOperation)
	}

	records := cat.Records(params.PaymentFrequency)

	quote := &SubscriptionQuote{
		Module:           params.Module,
		Edition:          params.Edition,
		PaymentFrequency: params.PaymentFrequency,
		PremiumSupport:   params.PremiumSupport,
		Currency:         types.DEFAULT_CURRENCY,
		LineItems:        make([]QuoteLineItem, 0, len(params.Module.PlanTypes())),
		MonthlyTotal:     decimal.Zero,
	}

	currencySet := false
	// summed from the undivided catalog amounts so a yearly charge matches
	// the catalog exactly
	cycleTotal := decimal.Zero
	for _, planType := range params.Module.PlanTypes() {
		item, err := buildLineItem(records, params, planType)
		if err != nil {
			return nil, err
		}
		if item.Matched() {
			if r, ok := findRecord(records, item.PriceID); ok {
				if !currencySet {
					quote.Currency = r.Currency
					currencySet = true
				}
				cycleTotal = cycleTotal.Add(r.UnitPrice().Mul(decimal.NewFromInt(item.Quantity)))
			}
		}
		quote.LineItems = append(quote.LineItems, item)
		quote.MonthlyTotal = quote.MonthlyTotal.Add(item.Total)
	}

	quote.DueToday = quote.MonthlyTotal
	if params.PaymentFrequency == types.PaymentFrequencyYearly {
		quote.DueToday = cycleTotal
	}

	return quote, nil
}

func buildLineItem(records []catalog.PriceRecord, params QuoteParams, planType types.PlanType) (QuoteLineItem, error) {
	qualified := planType.WithSupport(params.PremiumSupport)
	item := QuoteLineItem{
		PlanType:         qualified,
		Description:      describe(planType),
		UnitDescription:  "per developer/month",
		Quantity:         params.Quantities.For(planType),
		UnitPrice:        decimal.Zero,
		Total:            decimal.Zero,
		PaymentFrequency: params.PaymentFrequency,
	}

	pq := PriceQuantityParams{
		Records:          records,
		Edition:          params.Edition,
		PlanType:         planType,
		IsSupport:        params.PremiumSupport,
		PaymentFrequency: params.PaymentFrequency,
		Quantity:         item.Quantity,
	}

	if planType == types.PlanTypeMAU {
		tier, err := ResolveSampleTier(records, qualified)
		if err != nil {
			if ierr.IsNotFound(err) {
				item.UnitDescription = "per MAU/month"
				item.Warning = fmt.Sprintf("no %s price for edition %s billed %s", qualified, params.Edition, params.PaymentFrequency)
				return item, nil
			}
			return QuoteLineItem{}, err
		}
		item.SampleTier = &tier
		item.UnitDescription = sampleUnitDescription(tier)
		pq.SampleTier = &tier
	}

	priced, err := PriceQuantity(pq)
	if err != nil {
		return QuoteLineItem{}, err
	}

	item.Quantity = priced.BilledQuantity
	if priced.Record == nil {
		item.Warning = fmt.Sprintf("no %s price for edition %s billed %s", qualified, params.Edition, params.PaymentFrequency)
		return item, nil
	}

	item.PriceID = priced.Record.PriceID
	item.UnitPrice = priced.UnitPrice
	item.Total = priced.UnitPrice.Mul(decimal.NewFromInt(priced.BilledQuantity))
	return item, nil
}

func findRecord(records []catalog.PriceRecord, priceID string) (catalog.PriceRecord, bool) {
	for _, r := range records {
		if r.PriceID == priceID {
			return r, true
		}
	}
	return catalog.PriceRecord{}, false
}

func describe(planType types.PlanType) string {
	switch planType {
	case types.PlanTypeDevelopers:
		return "Developers"
	case types.PlanTypeMAU:
		return "Monthly active users"
	default:
		return string(planType)
	}
}

func sampleUnitDescription(tier SampleTier) string {
	if tier.Unit != "" {
		return fmt.Sprintf("per %s MAUs/month", tier.Unit)
	}
	return fmt.Sprintf("per %d MAUs/month", tier.Multiplier)
}
