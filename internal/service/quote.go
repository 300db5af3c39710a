package service

import (
	"context"
	"time"

	"github.com/flexprice/quoter/internal/api/dto"
	"github.com/flexprice/quoter/internal/domain/quote"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

type QuoteService interface {
	CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error)
	CompareEditions(ctx context.Context, req dto.CompareEditionsRequest) (*dto.CompareEditionsResponse, error)
	BuildSubscriptionRequest(ctx context.Context, req dto.CreateSubscriptionRequest) (*dto.SubscriptionPayload, error)
	GetRenewalDates(ctx context.Context, req dto.GetRenewalRequest) (*quote.Renewal, error)
	GetRecommendation(ctx context.Context, req dto.GetRecommendationRequest) (*dto.RecommendationResponse, error)
}

type quoteService struct {
	ServiceParams
	catalogs CatalogService
}

func NewQuoteService(params ServiceParams, catalogs CatalogService) QuoteService {
	return &quoteService{
		ServiceParams: params,
		catalogs:      catalogs,
	}
}

func (s *quoteService) CreateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q, err := s.buildQuote(ctx, req)
	if err != nil {
		return nil, err
	}
	return dto.NewQuoteResponse(q, s.now()), nil
}

func (s *quoteService) buildQuote(ctx context.Context, req dto.CreateQuoteRequest) (q *quote.SubscriptionQuote, err error) {
	started := time.Now()
	defer func() {
		s.Metrics.ObserveQuote(req.Module.String(), req.Edition.String(), req.PaymentFrequency.String(), err, started)
	}()

	cat, err := s.catalogs.GetCatalog(ctx, req.Module)
	if err != nil {
		return nil, err
	}

	q, err = quote.BuildQuote(req.ToQuoteParams(), cat)
	if err != nil {
		s.Logger.WithContext(ctx).Errorw("failed to build quote",
			"module", req.Module,
			"edition", req.Edition,
			"payment_frequency", req.PaymentFrequency,
			"error", err)
		return nil, err
	}

	for _, item := range q.LineItems {
		if item.Matched() {
			continue
		}
		s.Metrics.QuoteWarnings.WithLabelValues(req.Module.String(), item.PlanType.String()).Inc()
		s.Logger.WithContext(ctx).Warnw("quote line item has no catalog price",
			"module", req.Module,
			"edition", req.Edition,
			"payment_frequency", req.PaymentFrequency,
			"plan_type", item.PlanType,
			"warning", item.Warning)
	}

	s.Logger.WithContext(ctx).Debugw("built quote",
		"module", req.Module,
		"edition", req.Edition,
		"payment_frequency", req.PaymentFrequency,
		"developers", req.Developers,
		"mau", req.MAU,
		"premium_support", req.PremiumSupport,
		"price_ids", lo.FilterMap(q.LineItems, func(item quote.QuoteLineItem, _ int) (string, bool) {
			return item.PriceID, item.Matched()
		}),
		"monthly_total", q.MonthlyTotal)
	return q, nil
}

// CompareEditions quotes the same quantities once per edition. The quotes
// are built concurrently and returned in the order of req.Editions.
func (s *quoteService) CompareEditions(ctx context.Context, req dto.CompareEditionsRequest) (*dto.CompareEditionsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// warm the catalog once instead of racing every edition into singleflight
	if _, err := s.catalogs.GetCatalog(ctx, req.Module); err != nil {
		return nil, err
	}

	now := s.now()
	quotes := make([]*dto.QuoteResponse, len(req.Editions))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for i, edition := range req.Editions {
		p.Go(func(ctx context.Context) error {
			q, err := s.buildQuote(ctx, *req.ForEdition(edition))
			if err != nil {
				return err
			}
			quotes[i] = dto.NewQuoteResponse(q, now)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return &dto.CompareEditionsResponse{Quotes: quotes}, nil
}

// BuildSubscriptionRequest prices the selection and converts it into the
// payload of the subscription service create call.
func (s *quoteService) BuildSubscriptionRequest(ctx context.Context, req dto.CreateSubscriptionRequest) (*dto.SubscriptionPayload, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q, err := s.buildQuote(ctx, req.CreateQuoteRequest)
	if err != nil {
		return nil, err
	}

	items := q.SubscriptionItems()
	if len(items) == 0 {
		return nil, ierr.NewErrorf("no priced items for module %s edition %s", req.Module, req.Edition).
			WithHintf("Edition %s of %s has no prices to subscribe to", req.Edition, req.Module).
			WithReportableDetails(map[string]any{
				"module":            req.Module,
				"edition":           req.Edition,
				"payment_frequency": req.PaymentFrequency,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	return &dto.SubscriptionPayload{
		Customer:         req.Customer,
		Module:           q.Module,
		Edition:          q.Edition,
		PaymentFrequency: q.PaymentFrequency,
		PremiumSupport:   q.PremiumSupport,
		Items:            items,
	}, nil
}

func (s *quoteService) GetRenewalDates(_ context.Context, req dto.GetRenewalRequest) (*quote.Renewal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, err := req.FromTime(s.now())
	if err != nil {
		return nil, err
	}
	return quote.RenewalDates(req.PaymentFrequency, from)
}

// GetRecommendation picks the slider value covering the recommended usage
func (s *quoteService) GetRecommendation(ctx context.Context, req dto.GetRecommendationRequest) (*dto.RecommendationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.catalogs.GetCatalog(ctx, req.Module)
	if err != nil {
		return nil, err
	}

	records := cat.Records(req.PaymentFrequency)
	tier, err := quote.ResolveSampleTier(records, req.PlanType)
	if err != nil {
		return nil, err
	}

	values := quote.TierValues(records, req.PlanType, tier)
	number := quote.RecommendedNumber(req.Recommended, tier.Multiplier, values)

	return &dto.RecommendationResponse{
		Module:      req.Module,
		PlanType:    req.PlanType,
		Recommended: req.Recommended,
		SampleTier:  tier,
		Values:      values,
		Number:      number,
		Usage:       number * tier.Multiplier,
	}, nil
}
