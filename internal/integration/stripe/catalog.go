package stripe

import (
	"context"
	"strings"

	"github.com/flexprice/quoter/internal/domain/catalog"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/types"
	"github.com/stripe/stripe-go/v82"
)

// priceSeq is the iterator shape returned by the Stripe list endpoints
type priceSeq = func(yield func(*stripe.Price, error) bool)

type catalogRepository struct {
	client   *stripe.Client
	products map[string]string
	logger   *logger.Logger
}

// NewCatalogRepository lists the active recurring prices of the Stripe
// product configured for each module. Plan metadata is read from the price
// metadata using the same keys as every other catalog source.
func NewCatalogRepository(client *stripe.Client, products map[string]string, logger *logger.Logger) catalog.Repository {
	return &catalogRepository{
		client:   client,
		products: products,
		logger:   logger,
	}
}

func (r *catalogRepository) Fetch(ctx context.Context, module types.ModuleType) (*catalog.RawCatalog, error) {
	productID := r.products[string(module)]
	if productID == "" {
		return nil, ierr.NewErrorf("no stripe product configured for module %s", module).
			WithHintf("No price catalog for module %s", module).
			WithReportableDetails(map[string]any{
				"module": module,
			}).
			Mark(ierr.ErrNotFound)
	}

	params := &stripe.PriceListParams{
		Active:  stripe.Bool(true),
		Product: stripe.String(productID),
	}
	params.Limit = stripe.Int64(100)

	r.logger.WithContext(ctx).Debugw("listing stripe prices",
		"module", module,
		"product_id", productID,
	)

	raw, skipped, err := collectPrices(r.client.V1Prices.List(ctx, params))
	if err != nil {
		r.logger.WithContext(ctx).Errorw("failed to list prices from Stripe",
			"module", module,
			"product_id", productID,
			"error", err)
		return nil, ierr.WithError(err).
			WithHint("Failed to load prices from Stripe").
			WithReportableDetails(map[string]any{
				"module":     module,
				"product_id": productID,
			}).
			Mark(ierr.ErrCatalogUnavailable)
	}

	if len(skipped) > 0 {
		r.logger.WithContext(ctx).Warnw("skipped stripe prices that are not flat monthly or yearly prices",
			"module", module,
			"price_ids", skipped)
	}
	return raw, nil
}

// collectPrices splits the listed prices into the monthly and yearly lists,
// preserving list order. One-off prices, other intervals and tiered billing
// scheme prices, whose amount lives in tiers rather than unit_amount, are
// returned as skipped.
func collectPrices(seq priceSeq) (*catalog.RawCatalog, []string, error) {
	raw := &catalog.RawCatalog{}
	var skipped []string

	for price, err := range seq {
		if err != nil {
			return nil, nil, err
		}
		frequency, ok := frequencyOf(price)
		if !ok || price.BillingScheme == stripe.PriceBillingSchemeTiered {
			skipped = append(skipped, price.ID)
			continue
		}

		rp := fromStripePrice(price)
		switch frequency {
		case types.PaymentFrequencyMonthly:
			raw.Monthly = append(raw.Monthly, rp)
		case types.PaymentFrequencyYearly:
			raw.Yearly = append(raw.Yearly, rp)
		}
	}
	return raw, skipped, nil
}

func frequencyOf(price *stripe.Price) (types.PaymentFrequency, bool) {
	if price == nil || price.Recurring == nil {
		return "", false
	}
	if price.Recurring.IntervalCount > 1 {
		return "", false
	}
	switch price.Recurring.Interval {
	case stripe.PriceRecurringIntervalMonth:
		return types.PaymentFrequencyMonthly, true
	case stripe.PriceRecurringIntervalYear:
		return types.PaymentFrequencyYearly, true
	default:
		return "", false
	}
}

func fromStripePrice(price *stripe.Price) catalog.RawPrice {
	metadata := make(map[string]string, len(price.Metadata))
	for k, v := range price.Metadata {
		metadata[k] = v
	}
	return catalog.RawPrice{
		PriceID:    price.ID,
		Currency:   strings.ToLower(string(price.Currency)),
		UnitAmount: price.UnitAmount,
		LookupKey:  price.LookupKey,
		MetaData:   metadata,
	}
}
