package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flexprice/quoter/internal/api/dto"
	v1 "github.com/flexprice/quoter/internal/api/v1"
	"github.com/flexprice/quoter/internal/cache"
	"github.com/flexprice/quoter/internal/config"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/metrics"
	"github.com/flexprice/quoter/internal/service"
	"github.com/flexprice/quoter/internal/testutil"
	"github.com/flexprice/quoter/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	suite.Suite
	router *gin.Engine
	store  *testutil.InMemoryCatalogStore
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	cfg.Server.RateLimit = 0
	log := logger.NewNopLogger()
	m := metrics.NewMetrics(cfg)

	s.store = testutil.NewInMemoryCatalogStore()
	for module, raw := range testutil.RawCatalogs() {
		s.store.Set(module, raw)
	}

	params := service.ServiceParams{
		Logger:      log,
		Config:      cfg,
		Cache:       cache.NewInMemoryCache(cfg, log),
		Metrics:     m,
		CatalogRepo: s.store,
		Now:         func() time.Time { return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC) },
	}
	catalogService := service.NewCatalogService(params)
	quoteService := service.NewQuoteService(params, catalogService)

	s.router = NewRouter(Handlers{
		Health:  v1.NewHealthHandler(log),
		Catalog: v1.NewCatalogHandler(catalogService, log),
		Quote:   v1.NewQuoteHandler(quoteService, log),
	}, cfg, log, nil, m)
}

func (s *RouterSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestMetrics() {
	s.do(http.MethodGet, "/health", nil)

	w := s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "quoter_http_requests_total")
}

func (s *RouterSuite) TestCreateQuote() {
	w := s.do(http.MethodPost, "/v1/quotes", dto.CreateQuoteRequest{
		Module:           types.ModuleCF,
		Edition:          types.EditionTeam,
		PaymentFrequency: types.PaymentFrequencyMonthly,
		Developers:       5,
		MAU:              200,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	s.decode(w, &resp)
	s.Equal("18100", resp["monthly_total"])
	s.Equal("$18100.00", resp["display_monthly_total"])
	s.Equal("Apr 15, 2024", resp["next_renewal"])
	s.True(strings.HasPrefix(resp["id"].(string), "quote_"))
	s.Len(resp["line_items"], 2)
}

func (s *RouterSuite) TestCreateQuote_Errors() {
	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{name: "malformed body", body: "not an object", wantStatus: http.StatusBadRequest},
		{name: "missing edition", body: map[string]any{"module": "cf", "payment_frequency": "MONTHLY"}, wantStatus: http.StatusBadRequest},
		{name: "unknown module", body: map[string]any{"module": "cd", "edition": "TEAM", "payment_frequency": "MONTHLY"}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/v1/quotes", tt.body)
			s.Equal(tt.wantStatus, w.Code)

			var resp ierr.ErrorResponse
			s.decode(w, &resp)
			s.False(resp.Success)
			s.NotEmpty(resp.Error.Display)
		})
	}
}

func (s *RouterSuite) TestCreateQuote_CatalogUnavailable() {
	s.store.SetError(ierr.NewError("source down").Mark(ierr.ErrCatalogUnavailable))

	w := s.do(http.MethodPost, "/v1/quotes", dto.CreateQuoteRequest{
		Module:           types.ModuleCI,
		Edition:          types.EditionTeam,
		PaymentFrequency: types.PaymentFrequencyMonthly,
	})
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *RouterSuite) TestCompareEditions() {
	w := s.do(http.MethodPost, "/v1/quotes/compare", dto.CompareEditionsRequest{
		Module:           types.ModuleCF,
		PaymentFrequency: types.PaymentFrequencyMonthly,
		Developers:       2,
		MAU:              100,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Quotes []struct {
			Edition      types.Edition `json:"edition"`
			MonthlyTotal string        `json:"monthly_total"`
		} `json:"quotes"`
	}
	s.decode(w, &resp)
	s.Require().Len(resp.Quotes, 2)
	s.Equal(types.EditionTeam, resp.Quotes[0].Edition)
	s.Equal("9040", resp.Quotes[0].MonthlyTotal)
	s.Equal(types.EditionEnterprise, resp.Quotes[1].Edition)
	s.Equal("12090", resp.Quotes[1].MonthlyTotal)
}

func (s *RouterSuite) TestBuildSubscriptionRequest() {
	w := s.do(http.MethodPost, "/v1/quotes/subscription", map[string]any{
		"customer":          "cus_123",
		"module":            "ci",
		"edition":           "ENTERPRISE",
		"payment_frequency": "MONTHLY",
		"developers":        4,
		"premium_support":   true,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.JSONEq(`{
		"customer": "cus_123",
		"module": "ci",
		"edition": "ENTERPRISE",
		"paymentFrequency": "MONTHLY",
		"premiumSupport": true,
		"items": [{"type": "DEVELOPERS_SUPPORT", "quantity": 4, "quantityIncludedInPrice": false}]
	}`, w.Body.String())
}

func (s *RouterSuite) TestGetProductPrices() {
	w := s.do(http.MethodGet, "/v1/catalog/prices?module=ci&edition=TEAM&payment_frequency=YEARLY", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.ListProductPricesResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Items, 1)
	s.Equal("price_ci_dev_team_y", resp.Items[0].PriceID)
	s.Equal("$27.00", resp.Items[0].DisplayMonthlyPrice)

	w = s.do(http.MethodGet, "/v1/catalog/prices?module=ci&edition=TEAM", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestGetSampleTier() {
	w := s.do(http.MethodGet, "/v1/catalog/sample-tier?module=cf&payment_frequency=MONTHLY", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.JSONEq(`{
		"module": "cf",
		"plan_type": "MAUS",
		"payment_frequency": "MONTHLY",
		"sample_tier": {"unit": "K", "multiplier": 1000, "min_value": 100},
		"values": [100, 250, 1000]
	}`, w.Body.String())

	w = s.do(http.MethodGet, "/v1/catalog/sample-tier?module=ci&payment_frequency=MONTHLY", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestRefreshCatalog() {
	w := s.do(http.MethodPost, "/v1/catalog/refresh", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.RefreshCatalogResponse
	s.decode(w, &resp)
	s.Len(resp.Catalogs, len(types.Modules))

	w = s.do(http.MethodPost, "/v1/catalog/refresh", dto.RefreshCatalogRequest{Modules: []types.ModuleType{types.ModuleCI}})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &resp)
	s.Require().Len(resp.Catalogs, 1)
	s.Equal(types.ModuleCI, resp.Catalogs[0].Module)
	s.Equal(2, s.store.Fetches(types.ModuleCI))
}

func (s *RouterSuite) TestGetRenewalDates() {
	w := s.do(http.MethodGet, "/v1/renewals?payment_frequency=MONTHLY&from=2023-01-31", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	s.decode(w, &resp)
	s.Equal("Feb 28, 2023", resp["next_display"])
	s.Equal("Dec 31, 2022", resp["previous_display"])

	w = s.do(http.MethodGet, "/v1/renewals?payment_frequency=MONTHLY&from=soon", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestGetRecommendation() {
	w := s.do(http.MethodGet, "/v1/recommendations?module=cf&payment_frequency=YEARLY&recommended=180000", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.RecommendationResponse
	s.decode(w, &resp)
	s.Equal(int64(250), resp.Number)
	s.Equal(int64(250000), resp.Usage)
	s.Equal(types.PlanTypeMAU, resp.PlanType)
}
