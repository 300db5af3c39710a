package testutil

import (
	"context"
	"time"

	"github.com/flexprice/quoter/internal/cache"
	"github.com/flexprice/quoter/internal/config"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/metrics"
	"github.com/flexprice/quoter/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories used by service tests
type Stores struct {
	CatalogRepo *InMemoryCatalogStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	stores  Stores
	logger  *logger.Logger
	config  *config.Configuration
	cache   *cache.InMemoryCache
	metrics *metrics.Metrics
	now     time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	s.config = cfg
	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	s.setupStores()
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.metrics = metrics.NewMetrics(s.config)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.CatalogRepo.Clear()
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		CatalogRepo: NewInMemoryCatalogStore(),
	}
	for module, raw := range RawCatalogs() {
		s.stores.CatalogRepo.Set(module, raw)
	}
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetCache() *cache.InMemoryCache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetMetrics() *metrics.Metrics {
	return s.metrics
}

// GetNow returns the fixed clock of the test
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
