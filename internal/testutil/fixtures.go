package testutil

import (
	"github.com/flexprice/quoter/internal/domain/catalog"
	"github.com/flexprice/quoter/internal/types"
)

func rawFlat(id, planType, edition string, amount int64) catalog.RawPrice {
	return catalog.RawPrice{
		PriceID:    id,
		Currency:   "usd",
		UnitAmount: amount,
		MetaData: map[string]string{
			catalog.MetaKeyType:    planType,
			catalog.MetaKeyEdition: edition,
		},
	}
}

func rawTier(id, planType, edition string, amount int64, min, max string) catalog.RawPrice {
	rp := rawFlat(id, planType, edition, amount)
	rp.MetaData[catalog.MetaKeySampleUnit] = "K"
	rp.MetaData[catalog.MetaKeySampleMultiplier] = "1000"
	rp.MetaData[catalog.MetaKeyMin] = min
	if max != "" {
		rp.MetaData[catalog.MetaKeyMax] = max
	}
	return rp
}

// RawCFCatalog prices CF developers and MAUs for TEAM and ENTERPRISE.
//
// Monthly: TEAM developers $20, ENTERPRISE developers $45 ($55 with support),
// TEAM MAUs $90 per K up to 250K and $80 per K up to 1M, ENTERPRISE MAUs
// $120 per K ($140 with support) up to 1M.
// Yearly: TEAM developers $216, ENTERPRISE developers $480, TEAM MAUs $900
// and $840 per K, ENTERPRISE MAUs $1320 per K.
func RawCFCatalog() *catalog.RawCatalog {
	return &catalog.RawCatalog{
		Monthly: []catalog.RawPrice{
			rawFlat("price_cf_dev_team_m", "DEVELOPERS", "TEAM", 2000),
			rawFlat("price_cf_dev_ent_m", "DEVELOPERS", "ENTERPRISE", 4500),
			rawFlat("price_cf_dev_ent_sup_m", "DEVELOPERS_SUPPORT", "ENTERPRISE", 5500),
			rawTier("price_cf_mau_team_1_m", "MAUS", "TEAM", 9000, "100000", "250000"),
			rawTier("price_cf_mau_team_2_m", "MAUS", "TEAM", 8000, "250001", "1000000"),
			rawTier("price_cf_mau_ent_m", "MAUS", "ENTERPRISE", 12000, "100000", "1000000"),
			rawTier("price_cf_mau_ent_sup_m", "MAUS_SUPPORT", "ENTERPRISE", 14000, "100000", "1000000"),
		},
		Yearly: []catalog.RawPrice{
			rawFlat("price_cf_dev_team_y", "DEVELOPERS", "TEAM", 21600),
			rawFlat("price_cf_dev_ent_y", "DEVELOPERS", "ENTERPRISE", 48000),
			rawTier("price_cf_mau_team_1_y", "MAUS", "TEAM", 90000, "100000", "250000"),
			rawTier("price_cf_mau_team_2_y", "MAUS", "TEAM", 84000, "250001", "1000000"),
			rawTier("price_cf_mau_ent_y", "MAUS", "ENTERPRISE", 132000, "100000", "1000000"),
		},
	}
}

// RawCICatalog prices CI developers: TEAM $30 monthly or $324 yearly,
// ENTERPRISE $60 monthly ($72 with support).
func RawCICatalog() *catalog.RawCatalog {
	return &catalog.RawCatalog{
		Monthly: []catalog.RawPrice{
			rawFlat("price_ci_dev_team_m", "DEVELOPERS", "TEAM", 3000),
			rawFlat("price_ci_dev_ent_m", "DEVELOPERS", "ENTERPRISE", 6000),
			rawFlat("price_ci_dev_ent_sup_m", "DEVELOPERS_SUPPORT", "ENTERPRISE", 7200),
		},
		Yearly: []catalog.RawPrice{
			rawFlat("price_ci_dev_team_y", "DEVELOPERS", "TEAM", 32400),
		},
	}
}

// RawCatalogs returns the fixture catalog of every module
func RawCatalogs() map[types.ModuleType]*catalog.RawCatalog {
	return map[types.ModuleType]*catalog.RawCatalog{
		types.ModuleCF: RawCFCatalog(),
		types.ModuleCI: RawCICatalog(),
	}
}
