package api

import (
	v1 "github.com/flexprice/quoter/internal/api/v1"
	"github.com/flexprice/quoter/internal/config"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/metrics"
	"github.com/flexprice/quoter/internal/rest/middleware"
	"github.com/flexprice/quoter/internal/sentry"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health  *v1.HealthHandler
	Catalog *v1.CatalogHandler
	Quote   *v1.QuoteHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.MetricsMiddleware(m),
		middleware.ErrorHandler(logger, sentrySvc),
	)

	router.GET("/health", handlers.Health.Health)
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	v1Router := router.Group("/v1")
	v1Router.Use(middleware.RateLimitMiddleware(cfg))

	catalog := v1Router.Group("/catalog")
	{
		catalog.GET("/prices", handlers.Catalog.GetProductPrices)
		catalog.GET("/sample-tier", handlers.Catalog.GetSampleTier)
		catalog.POST("/refresh", handlers.Catalog.Refresh)
	}

	quotes := v1Router.Group("/quotes")
	{
		quotes.POST("", handlers.Quote.CreateQuote)
		quotes.POST("/compare", handlers.Quote.CompareEditions)
		quotes.POST("/subscription", handlers.Quote.BuildSubscriptionRequest)
	}

	v1Router.GET("/renewals", handlers.Quote.GetRenewalDates)
	v1Router.GET("/recommendations", handlers.Quote.GetRecommendation)

	return router
}
