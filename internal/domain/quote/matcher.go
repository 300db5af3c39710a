package quote

import (
	"github.com/flexprice/quoter/internal/domain/catalog"
	"github.com/flexprice/quoter/internal/types"
	"github.com/samber/lo"
)

// MatchPlan returns the first record, in catalog order, whose plan type is
// the support qualified planType and whose edition equals edition. The
// boolean is false when nothing matched; that is not an error.
func MatchPlan(records []catalog.PriceRecord, edition types.Edition, planType types.PlanType, isSupport bool) (catalog.PriceRecord, bool) {
	qualified := planType.WithSupport(isSupport)
	return lo.Find(records, func(r catalog.PriceRecord) bool {
		return r.Metadata.PlanType == qualified && r.Metadata.Edition == edition
	})
}

// matchTier is MatchPlan restricted to records whose usage range holds usage
func matchTier(records []catalog.PriceRecord, edition types.Edition, planType types.PlanType, isSupport bool, usage int64) (catalog.PriceRecord, bool) {
	qualified := planType.WithSupport(isSupport)
	return lo.Find(records, func(r catalog.PriceRecord) bool {
		return r.Metadata.PlanType == qualified &&
			r.Metadata.Edition == edition &&
			r.ContainsUsage(usage)
	})
}

// GetProductPrices returns the records of the frequency's price list that
// apply to edition. Records without an edition apply to every edition.
func GetProductPrices(edition types.Edition, frequency types.PaymentFrequency, cat *catalog.Catalog) []catalog.PriceRecord {
	if cat == nil {
		return nil
	}
	return lo.Filter(cat.Records(frequency), func(r catalog.PriceRecord, _ int) bool {
		return r.AppliesToEdition(edition)
	})
}
