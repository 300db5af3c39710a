package quote

import (
	"github.com/flexprice/quoter/internal/domain/catalog"
	"github.com/flexprice/quoter/internal/types"
	"github.com/shopspring/decimal"
)

// SampleTier is the billing granularity of a usage dimension
type SampleTier struct {
	// Unit is the display unit of one sample ex K
	Unit string `json:"unit"`
	// Multiplier is the absolute usage represented by one sample ex 1000
	Multiplier int64 `json:"multiplier"`
	// MinValue is the smallest billable number of samples
	MinValue int64 `json:"min_value"`
}

// Quantities are the customer selected amounts per billable dimension.
// MAU is expressed in samples, not absolute users.
type Quantities struct {
	Developers int64 `json:"developers"`
	MAU        int64 `json:"mau"`
}

// For returns the quantity of the dimension identified by planType
func (q Quantities) For(planType types.PlanType) int64 {
	switch planType.Base() {
	case types.PlanTypeDevelopers:
		return q.Developers
	case types.PlanTypeMAU:
		return q.MAU
	default:
		return 0
	}
}

// QuoteParams are the inputs of BuildQuote
type QuoteParams struct {
	Module           types.ModuleType
	Edition          types.Edition
	PaymentFrequency types.PaymentFrequency
	Quantities       Quantities
	PremiumSupport   bool
}

// QuoteLineItem is the price of one billable dimension
type QuoteLineItem struct {
	// PlanType is the dimension priced, support qualified when premium support is on
	PlanType        types.PlanType `json:"plan_type"`
	Description     string         `json:"description"`
	UnitDescription string         `json:"unit_description"`
	Quantity        int64          `json:"quantity"`

	// UnitPrice is always a per month rate in major currency units
	UnitPrice decimal.Decimal `json:"unit_price"`
	// Total is UnitPrice * Quantity
	Total decimal.Decimal `json:"total"`

	PaymentFrequency types.PaymentFrequency `json:"payment_frequency"`

	// PriceID of the catalog record the unit price derives from, empty when
	// no record matched and the line degraded to a zero price
	PriceID string `json:"price_id,omitempty"`

	SampleTier *SampleTier `json:"sample_tier,omitempty"`
	Warning    string      `json:"warning,omitempty"`
}

// Matched reports whether the line item is backed by a catalog record
func (l QuoteLineItem) Matched() bool {
	return l.PriceID != ""
}

// SubscriptionQuote is the full price breakdown of a module subscription.
// It is rebuilt from scratch whenever an input changes.
type SubscriptionQuote struct {
	Module           types.ModuleType       `json:"module"`
	Edition          types.Edition          `json:"edition"`
	PaymentFrequency types.PaymentFrequency `json:"payment_frequency"`
	PremiumSupport   bool                   `json:"premium_support"`
	Currency         string                 `json:"currency"`
	LineItems        []QuoteLineItem        `json:"line_items"`

	// MonthlyTotal is the sum of the line totals
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	// DueToday is what one billing cycle costs: the monthly total, or the sum
	// of the catalog yearly amounts for yearly billing
	DueToday decimal.Decimal `json:"due_today"`
}

// Warnings returns the warnings of every degraded line item
func (q *SubscriptionQuote) Warnings() []string {
	var warnings []string
	for _, item := range q.LineItems {
		if item.Warning != "" {
			warnings = append(warnings, item.Warning)
		}
	}
	return warnings
}

// PricedQuantity is the result of pricing one dimension
type PricedQuantity struct {
	BilledQuantity int64
	// Usage is the absolute usage the tier was selected with, 0 for flat dimensions
	Usage     int64
	UnitPrice decimal.Decimal
	// Record is nil when no catalog record matched
	Record *catalog.PriceRecord
}
