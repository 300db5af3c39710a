package quote

import "github.com/flexprice/quoter/internal/types"

// SubscriptionItem is one entry of the create subscription request
type SubscriptionItem struct {
	Type                    types.PlanType `json:"type"`
	Quantity                int64          `json:"quantity"`
	QuantityIncludedInPrice bool           `json:"quantityIncludedInPrice"`
}

// SubscriptionItems converts the priced line items into subscription items.
// Unmatched line items are left out since there is no price to subscribe to.
// Every item is billed per unit, so the quantity is never included in the price.
func (q *SubscriptionQuote) SubscriptionItems() []SubscriptionItem {
	items := make([]SubscriptionItem, 0, len(q.LineItems))
	for _, li := range q.LineItems {
		if !li.Matched() {
			continue
		}
		items = append(items, SubscriptionItem{
			Type:                    li.PlanType,
			Quantity:                li.Quantity,
			QuantityIncludedInPrice: false,
		})
	}
	return items
}
