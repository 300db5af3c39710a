package service

import (
	"context"
	"sync"
	"time"

	"github.com/flexprice/quoter/internal/api/dto"
	"github.com/flexprice/quoter/internal/cache"
	"github.com/flexprice/quoter/internal/domain/catalog"
	"github.com/flexprice/quoter/internal/domain/quote"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
)

// CatalogService serves ingested catalog snapshots. Snapshots are cached
// per module and concurrent misses for the same module share one fetch.
// The last snapshot loaded for a module keeps being served when a later
// fetch fails, even after its cache entry expired.
type CatalogService interface {
	GetCatalog(ctx context.Context, module types.ModuleType) (*catalog.Catalog, error)
	Refresh(ctx context.Context, req dto.RefreshCatalogRequest) (*dto.RefreshCatalogResponse, error)
	GetProductPrices(ctx context.Context, req dto.GetProductPricesRequest) (*dto.ListProductPricesResponse, error)
	GetSampleTier(ctx context.Context, req dto.GetSampleTierRequest) (*dto.SampleTierResponse, error)
}

type catalogService struct {
	ServiceParams
	sf singleflight.Group

	mu       sync.RWMutex
	lastGood map[types.ModuleType]*catalog.Catalog
}

func NewCatalogService(params ServiceParams) CatalogService {
	return &catalogService{
		ServiceParams: params,
		lastGood:      make(map[types.ModuleType]*catalog.Catalog),
	}
}

func (s *catalogService) snapshot(module types.ModuleType) (*catalog.Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat, ok := s.lastGood[module]
	return cat, ok
}

func catalogKey(module types.ModuleType) string {
	return cache.GenerateKey(cache.PrefixCatalog, module)
}

func (s *catalogService) GetCatalog(ctx context.Context, module types.ModuleType) (*catalog.Catalog, error) {
	if err := module.Validate(); err != nil {
		return nil, err
	}

	if v, found := s.Cache.Get(ctx, catalogKey(module)); found {
		if cat, ok := v.(*catalog.Catalog); ok {
			s.Metrics.ObserveCache("catalog", true)
			return cat, nil
		}
	}
	s.Metrics.ObserveCache("catalog", false)

	v, err, shared := s.sf.Do(string(module), func() (interface{}, error) {
		// the fetch outlives the request that triggered it
		cat, _, err := s.load(context.WithoutCancel(ctx), module)
		return cat, err
	})
	if err != nil {
		if cat, ok := s.snapshot(module); ok {
			s.Logger.WithContext(ctx).Warnw("serving last loaded price catalog after failed fetch",
				"module", module,
				"fetched_at", cat.FetchedAt(),
				"error", err)
			return cat, nil
		}
		return nil, err
	}
	if shared {
		s.Logger.WithContext(ctx).Debugw("shared in-flight catalog fetch", "module", module)
	}
	return v.(*catalog.Catalog), nil
}

// load fetches, ingests and caches the catalog of module
func (s *catalogService) load(ctx context.Context, module types.ModuleType) (*catalog.Catalog, []catalog.IngestWarning, error) {
	log := s.Logger.WithContext(ctx)
	source := s.Config.Catalog.Source.String()

	started := time.Now()
	spanCtx, finish := s.Sentry.StartCatalogSpan(ctx, "catalog.fetch", map[string]interface{}{
		"module": module,
		"source": source,
	})
	raw, err := s.CatalogRepo.Fetch(spanCtx, module)
	finish(err)
	s.Metrics.ObserveCatalogFetch(module.String(), source, err, started)
	if err != nil {
		log.Errorw("failed to fetch price catalog",
			"module", module,
			"source", source,
			"error", err)
		return nil, nil, err
	}

	cat, warnings, err := catalog.Ingest(module, raw, catalog.IngestOptions{
		Strict:    s.Config.Catalog.StrictMetadata,
		FetchedAt: s.now(),
	})
	if err != nil {
		log.Errorw("rejected price catalog",
			"module", module,
			"source", source,
			"error", err)
		// a malformed catalog is a server side problem, not a bad request
		return nil, nil, ierr.NewErrorf("catalog of module %s rejected: %v", module, err).
			WithHintf("Price catalog for %s is misconfigured", module).
			WithReportableDetails(map[string]any{
				"module": module,
			}).
			Mark(ierr.ErrConfiguration)
	}

	for _, w := range warnings {
		log.Warnw("catalog record normalised during ingestion",
			"module", module,
			"price_id", w.PriceID,
			"payment_frequency", w.Frequency,
			"field", w.Field,
			"value", w.Value,
			"reason", w.Reason,
			"skipped", w.Skipped)
	}
	s.Metrics.CatalogIngestWarnings.WithLabelValues(module.String()).Add(float64(len(warnings)))
	s.Metrics.CatalogRecords.WithLabelValues(module.String(), types.PaymentFrequencyMonthly.String()).Set(float64(len(cat.Monthly())))
	s.Metrics.CatalogRecords.WithLabelValues(module.String(), types.PaymentFrequencyYearly.String()).Set(float64(len(cat.Yearly())))

	s.mu.Lock()
	s.lastGood[module] = cat
	s.mu.Unlock()
	s.Cache.Set(ctx, catalogKey(module), cat, s.Config.Cache.TTL)

	log.Infow("loaded price catalog",
		"module", module,
		"source", source,
		"monthly", len(cat.Monthly()),
		"yearly", len(cat.Yearly()),
		"warnings", len(warnings))
	return cat, warnings, nil
}

// Refresh re-fetches the requested catalogs. A module whose fetch fails
// keeps serving its previous snapshot and the first failure is returned.
func (s *catalogService) Refresh(ctx context.Context, req dto.RefreshCatalogRequest) (*dto.RefreshCatalogResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	modules := req.Modules
	if len(modules) == 0 {
		modules = types.Modules
	}

	var firstErr error
	resp := &dto.RefreshCatalogResponse{Catalogs: make([]dto.CatalogSummary, 0, len(modules))}
	for _, module := range lo.Uniq(modules) {
		s.sf.Forget(string(module))
		cat, warnings, err := s.load(ctx, module)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		resp.Catalogs = append(resp.Catalogs, dto.CatalogSummary{
			Module:    module,
			Monthly:   len(cat.Monthly()),
			Yearly:    len(cat.Yearly()),
			FetchedAt: cat.FetchedAt(),
			Warnings:  warnings,
		})
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return resp, nil
}

func (s *catalogService) GetProductPrices(ctx context.Context, req dto.GetProductPricesRequest) (*dto.ListProductPricesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.GetCatalog(ctx, req.Module)
	if err != nil {
		return nil, err
	}

	records := quote.GetProductPrices(req.Edition, req.PaymentFrequency, cat)
	return &dto.ListProductPricesResponse{
		Module:           req.Module,
		Edition:          req.Edition,
		PaymentFrequency: req.PaymentFrequency,
		FetchedAt:        cat.FetchedAt(),
		Items:            lo.Map(records, func(r catalog.PriceRecord, _ int) dto.ProductPriceResponse { return dto.NewProductPriceResponse(r) }),
	}, nil
}

func (s *catalogService) GetSampleTier(ctx context.Context, req dto.GetSampleTierRequest) (*dto.SampleTierResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.GetCatalog(ctx, req.Module)
	if err != nil {
		return nil, err
	}

	records := cat.Records(req.PaymentFrequency)
	tier, err := quote.ResolveSampleTier(records, req.PlanType)
	if err != nil {
		return nil, err
	}

	return &dto.SampleTierResponse{
		Module:           req.Module,
		PlanType:         req.PlanType,
		PaymentFrequency: req.PaymentFrequency,
		SampleTier:       tier,
		Values:           quote.TierValues(records, req.PlanType, tier),
	}, nil
}
