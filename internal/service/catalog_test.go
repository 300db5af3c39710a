package service

import (
	"sync"
	"testing"
	"time"

	"github.com/flexprice/quoter/internal/api/dto"
	"github.com/flexprice/quoter/internal/cache"
	"github.com/flexprice/quoter/internal/domain/catalog"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/testutil"
	"github.com/flexprice/quoter/internal/types"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CatalogService
}

func TestCatalogService(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCatalogService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	now := s.GetNow()
	return ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		Cache:       s.GetCache(),
		Metrics:     s.GetMetrics(),
		CatalogRepo: s.GetStores().CatalogRepo,
		Now:         func() time.Time { return now },
	}
}

func (s *CatalogServiceSuite) TestGetCatalog() {
	cat, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)
	s.Equal(types.ModuleCF, cat.Module())
	s.Equal(s.GetNow(), cat.FetchedAt())
	s.Len(cat.Monthly(), 7)
	s.Len(cat.Yearly(), 5)

	again, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)
	s.Same(cat, again)
	s.Equal(1, s.GetStores().CatalogRepo.Fetches(types.ModuleCF))

	m := s.GetMetrics()
	s.Equal(float64(1), promtestutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("catalog")))
	s.Equal(float64(1), promtestutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("catalog")))
	s.Equal(float64(7), promtestutil.ToFloat64(m.CatalogRecords.WithLabelValues("cf", "MONTHLY")))
	s.Equal(float64(1), promtestutil.ToFloat64(m.CatalogFetchTotal.WithLabelValues("cf", "file", "success")))
}

func (s *CatalogServiceSuite) TestGetCatalog_ModulesAreIsolated() {
	cf, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)
	ci, err := s.service.GetCatalog(s.GetContext(), types.ModuleCI)
	s.NoError(err)

	s.Equal(types.ModuleCI, ci.Module())
	s.NotEqual(cf.Len(), ci.Len())
	s.Equal(1, s.GetStores().CatalogRepo.Fetches(types.ModuleCI))
}

func (s *CatalogServiceSuite) TestGetCatalog_ConcurrentMissesShareOneFetch() {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
			s.NoError(err)
		}()
	}
	wg.Wait()

	// later callers are served from the cache or the shared fetch
	s.LessOrEqual(s.GetStores().CatalogRepo.Fetches(types.ModuleCF), 8)
	s.GreaterOrEqual(s.GetStores().CatalogRepo.Fetches(types.ModuleCF), 1)
}

func (s *CatalogServiceSuite) TestGetCatalog_Errors() {
	_, err := s.service.GetCatalog(s.GetContext(), "cd")
	s.True(ierr.IsValidation(err))

	s.GetStores().CatalogRepo.SetError(ierr.NewError("source down").Mark(ierr.ErrCatalogUnavailable))
	_, err = s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.True(ierr.IsCatalogUnavailable(err))

	m := s.GetMetrics()
	s.Equal(float64(1), promtestutil.ToFloat64(m.CatalogFetchTotal.WithLabelValues("cf", "file", "error")))
}

func (s *CatalogServiceSuite) TestGetCatalog_StrictMetadata() {
	cfg := s.GetConfig()
	cfg.Catalog.StrictMetadata = true
	defer func() { cfg.Catalog.StrictMetadata = false }()

	raw := testutil.RawCFCatalog()
	raw.Monthly[3].MetaData[catalog.MetaKeyMin] = "one hundred"
	s.GetStores().CatalogRepo.Set(types.ModuleCF, raw)

	_, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.Error(err)
	s.True(ierr.IsConfiguration(err))
	s.False(ierr.IsValidation(err))
}

func (s *CatalogServiceSuite) TestGetCatalog_LenientMetadata() {
	raw := testutil.RawCFCatalog()
	raw.Monthly = append(raw.Monthly, catalog.RawPrice{PriceID: "price_untyped", UnitAmount: 100})
	s.GetStores().CatalogRepo.Set(types.ModuleCF, raw)

	cat, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)
	s.Len(cat.Monthly(), 7)
	s.Equal(float64(1), promtestutil.ToFloat64(s.GetMetrics().CatalogIngestWarnings.WithLabelValues("cf")))
}

func (s *CatalogServiceSuite) TestRefresh() {
	_, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)

	raw := testutil.RawCFCatalog()
	raw.Monthly = raw.Monthly[:1]
	s.GetStores().CatalogRepo.Set(types.ModuleCF, raw)

	resp, err := s.service.Refresh(s.GetContext(), dto.RefreshCatalogRequest{Modules: []types.ModuleType{types.ModuleCF, types.ModuleCF}})
	s.NoError(err)
	s.Len(resp.Catalogs, 1)
	s.Equal(types.ModuleCF, resp.Catalogs[0].Module)
	s.Equal(1, resp.Catalogs[0].Monthly)
	s.Equal(5, resp.Catalogs[0].Yearly)
	s.Equal(2, s.GetStores().CatalogRepo.Fetches(types.ModuleCF))

	cat, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)
	s.Len(cat.Monthly(), 1)
}

func (s *CatalogServiceSuite) TestRefresh_AllModules() {
	resp, err := s.service.Refresh(s.GetContext(), dto.RefreshCatalogRequest{})
	s.NoError(err)
	s.Equal(types.Modules, lo.Map(resp.Catalogs, func(c dto.CatalogSummary, _ int) types.ModuleType { return c.Module }))
}

func (s *CatalogServiceSuite) TestRefresh_FailureKeepsSnapshot() {
	before, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)

	s.GetStores().CatalogRepo.SetError(ierr.NewError("source down").Mark(ierr.ErrCatalogUnavailable))
	_, err = s.service.Refresh(s.GetContext(), dto.RefreshCatalogRequest{Modules: []types.ModuleType{types.ModuleCF}})
	s.True(ierr.IsCatalogUnavailable(err))

	after, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)
	s.Same(before, after)
}

func (s *CatalogServiceSuite) TestRefresh_FailureAfterExpiryKeepsSnapshot() {
	before, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)

	// the cache entry is gone by the time the source starts failing
	s.GetCache().Delete(s.GetContext(), catalogKey(types.ModuleCF))
	s.GetStores().CatalogRepo.SetError(ierr.NewError("source down").Mark(ierr.ErrCatalogUnavailable))

	_, err = s.service.Refresh(s.GetContext(), dto.RefreshCatalogRequest{Modules: []types.ModuleType{types.ModuleCF}})
	s.True(ierr.IsCatalogUnavailable(err))

	after, err := s.service.GetCatalog(s.GetContext(), types.ModuleCF)
	s.NoError(err)
	s.Same(before, after)
	s.Equal(3, s.GetStores().CatalogRepo.Fetches(types.ModuleCF))
}

func (s *CatalogServiceSuite) TestGetCatalog_CacheDisabledKeepsSnapshot() {
	cfg := s.GetConfig()
	cfg.Cache.Enabled = false
	defer func() { cfg.Cache.Enabled = true }()

	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.Cache = cache.NewInMemoryCache(cfg, s.GetLogger())
	svc := NewCatalogService(params)

	before, err := svc.GetCatalog(s.GetContext(), types.ModuleCI)
	s.NoError(err)

	s.GetStores().CatalogRepo.SetError(ierr.NewError("source down").Mark(ierr.ErrCatalogUnavailable))
	after, err := svc.GetCatalog(s.GetContext(), types.ModuleCI)
	s.NoError(err)
	s.Same(before, after)
	s.Equal(2, s.GetStores().CatalogRepo.Fetches(types.ModuleCI))
}

func (s *CatalogServiceSuite) TestRefresh_InvalidModule() {
	_, err := s.service.Refresh(s.GetContext(), dto.RefreshCatalogRequest{Modules: []types.ModuleType{"cd"}})
	s.True(ierr.IsValidation(err))
	s.Equal(0, s.GetStores().CatalogRepo.Fetches(types.ModuleCF))
}

func (s *CatalogServiceSuite) TestGetProductPrices() {
	tests := []struct {
		name    string
		req     dto.GetProductPricesRequest
		wantIDs []string
		wantErr func(error) bool
	}{
		{
			name: "enterprise monthly",
			req:  dto.GetProductPricesRequest{Module: types.ModuleCF, Edition: types.EditionEnterprise, PaymentFrequency: types.PaymentFrequencyMonthly},
			wantIDs: []string{
				"price_cf_dev_ent_m",
				"price_cf_dev_ent_sup_m",
				"price_cf_mau_ent_m",
				"price_cf_mau_ent_sup_m",
			},
		},
		{
			name:    "team yearly",
			req:     dto.GetProductPricesRequest{Module: types.ModuleCI, Edition: types.EditionTeam, PaymentFrequency: types.PaymentFrequencyYearly},
			wantIDs: []string{"price_ci_dev_team_y"},
		},
		{
			name:    "free edition has no prices",
			req:     dto.GetProductPricesRequest{Module: types.ModuleCI, Edition: types.EditionFree, PaymentFrequency: types.PaymentFrequencyMonthly},
			wantIDs: []string{},
		},
		{
			name:    "invalid frequency",
			req:     dto.GetProductPricesRequest{Module: types.ModuleCF, Edition: types.EditionTeam, PaymentFrequency: "WEEKLY"},
			wantErr: ierr.IsValidation,
		},
		{
			name:    "missing module",
			req:     dto.GetProductPricesRequest{Edition: types.EditionTeam, PaymentFrequency: types.PaymentFrequencyMonthly},
			wantErr: ierr.IsValidation,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, err := s.service.GetProductPrices(s.GetContext(), tt.req)
			if tt.wantErr != nil {
				s.True(tt.wantErr(err), "unexpected error: %v", err)
				return
			}
			s.NoError(err)
			s.Equal(tt.wantIDs, lo.Map(resp.Items, func(p dto.ProductPriceResponse, _ int) string { return p.PriceID }))
		})
	}
}

func (s *CatalogServiceSuite) TestGetProductPrices_MonthlyUnitPrice() {
	resp, err := s.service.GetProductPrices(s.GetContext(), dto.GetProductPricesRequest{
		Module:           types.ModuleCF,
		Edition:          types.EditionTeam,
		PaymentFrequency: types.PaymentFrequencyYearly,
	})
	s.NoError(err)
	s.Require().NotEmpty(resp.Items)

	dev := resp.Items[0]
	s.Equal("price_cf_dev_team_y", dev.PriceID)
	s.Equal("216", dev.UnitPrice.String())
	s.Equal("18", dev.MonthlyUnitPrice.String())
	s.Equal("$18.00", dev.DisplayMonthlyPrice)
}

func (s *CatalogServiceSuite) TestGetSampleTier() {
	resp, err := s.service.GetSampleTier(s.GetContext(), dto.GetSampleTierRequest{
		Module:           types.ModuleCF,
		PaymentFrequency: types.PaymentFrequencyMonthly,
	})
	s.NoError(err)
	s.Equal(types.PlanTypeMAU, resp.PlanType)
	s.Equal("K", resp.SampleTier.Unit)
	s.Equal(int64(1000), resp.SampleTier.Multiplier)
	s.Equal(int64(100), resp.SampleTier.MinValue)
	s.Equal([]int64{100, 250, 1000}, resp.Values)
}

func (s *CatalogServiceSuite) TestGetSampleTier_NoRecords() {
	_, err := s.service.GetSampleTier(s.GetContext(), dto.GetSampleTierRequest{
		Module:           types.ModuleCI,
		PaymentFrequency: types.PaymentFrequencyMonthly,
	})
	s.True(ierr.IsNotFound(err))
}
