package quote

import (
	"time"

	"github.com/flexprice/quoter/internal/domain/catalog"
	"github.com/flexprice/quoter/internal/types"
	"github.com/samber/lo"
)

var fixtureTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func flat(id string, planType types.PlanType, edition types.Edition, amount int64) catalog.PriceRecord {
	return catalog.PriceRecord{
		PriceID:    id,
		Currency:   "usd",
		UnitAmount: amount,
		Metadata: catalog.Metadata{
			PlanType: planType,
			Edition:  edition,
		},
	}
}

func tiered(id string, planType types.PlanType, edition types.Edition, amount, min int64, max *int64) catalog.PriceRecord {
	return catalog.PriceRecord{
		PriceID:    id,
		Currency:   "usd",
		UnitAmount: amount,
		Metadata: catalog.Metadata{
			PlanType:         planType,
			Edition:          edition,
			SampleUnit:       "K",
			SampleMultiplier: 1000,
			MinUsage:         min,
			MaxUsage:         max,
		},
	}
}

func withFrequency(records []catalog.PriceRecord, frequency types.PaymentFrequency) []catalog.PriceRecord {
	return lo.Map(records, func(r catalog.PriceRecord, _ int) catalog.PriceRecord {
		r.Frequency = frequency
		return r
	})
}

// cfCatalog prices TEAM developers and MAUs in two tiers, ENTERPRISE
// developers with and without support, and ENTERPRISE MAUs with support only.
func cfCatalog() *catalog.Catalog {
	monthly := []catalog.PriceRecord{
		flat("m_dev_team", types.PlanTypeDevelopers, types.EditionTeam, 2000),
		flat("m_dev_ent", types.PlanTypeDevelopers, types.EditionEnterprise, 4500),
		flat("m_dev_ent_sup", "DEVELOPERS_SUPPORT", types.EditionEnterprise, 5500),
		tiered("m_mau_team_1", types.PlanTypeMAU, types.EditionTeam, 9000, 100000, lo.ToPtr(int64(250000))),
		tiered("m_mau_team_2", types.PlanTypeMAU, types.EditionTeam, 8000, 250001, lo.ToPtr(int64(1000000))),
		tiered("m_mau_ent_sup", "MAUS_SUPPORT", types.EditionEnterprise, 14000, 100000, lo.ToPtr(int64(1000000))),
	}
	yearly := []catalog.PriceRecord{
		flat("y_dev_team", types.PlanTypeDevelopers, types.EditionTeam, 21600),
		flat("y_dev_ent", types.PlanTypeDevelopers, types.EditionEnterprise, 48000),
		tiered("y_mau_team_1", types.PlanTypeMAU, types.EditionTeam, 90000, 100000, lo.ToPtr(int64(250000))),
		tiered("y_mau_team_2", types.PlanTypeMAU, types.EditionTeam, 84000, 250001, lo.ToPtr(int64(1000000))),
	}
	return catalog.New(
		types.ModuleCF,
		withFrequency(monthly, types.PaymentFrequencyMonthly),
		withFrequency(yearly, types.PaymentFrequencyYearly),
		fixtureTime,
	)
}

func ciCatalog() *catalog.Catalog {
	monthly := []catalog.PriceRecord{
		flat("ci_m_dev_team", types.PlanTypeDevelopers, types.EditionTeam, 3000),
		flat("ci_m_dev_ent_sup", "DEVELOPERS_SUPPORT", types.EditionEnterprise, 7200),
	}
	yearly := []catalog.PriceRecord{
		flat("ci_y_dev_team", types.PlanTypeDevelopers, types.EditionTeam, 32400),
	}
	return catalog.New(
		types.ModuleCI,
		withFrequency(monthly, types.PaymentFrequencyMonthly),
		withFrequency(yearly, types.PaymentFrequencyYearly),
		fixtureTime,
	)
}
