package service

import (
	"time"

	"github.com/flexprice/quoter/internal/cache"
	"github.com/flexprice/quoter/internal/config"
	"github.com/flexprice/quoter/internal/domain/catalog"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/metrics"
	"github.com/flexprice/quoter/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger  *logger.Logger
	Config  *config.Configuration
	Cache   cache.Cache
	Metrics *metrics.Metrics
	// Sentry is optional
	Sentry *sentry.Service

	// Repositories
	CatalogRepo catalog.Repository

	// Now is the service clock, time.Now when nil
	Now func() time.Time
}

// NewServiceParams creates ServiceParams from the fx container
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	metrics *metrics.Metrics,
	sentry *sentry.Service,
	catalogRepo catalog.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:      logger,
		Config:      config,
		Cache:       cache,
		Metrics:     metrics,
		Sentry:      sentry,
		CatalogRepo: catalogRepo,
		Now:         time.Now,
	}
}

func (p ServiceParams) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}
	return p.Now().UTC()
}
