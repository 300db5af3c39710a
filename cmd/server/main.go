package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flexprice/quoter/internal/api"
	"github.com/flexprice/quoter/internal/api/dto"
	v1 "github.com/flexprice/quoter/internal/api/v1"
	"github.com/flexprice/quoter/internal/cache"
	"github.com/flexprice/quoter/internal/config"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/metrics"
	"github.com/flexprice/quoter/internal/repository"
	"github.com/flexprice/quoter/internal/sentry"
	"github.com/flexprice/quoter/internal/service"
	"github.com/flexprice/quoter/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// a missing .env is fine, the environment and config.yaml still apply
	_ = godotenv.Load()

	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			metrics.NewMetrics,

			// Cache
			provideCache,

			// Repositories
			repository.NewCatalogRepository,
		),
		sentry.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewCatalogService,
			service.NewQuoteService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideCache(cfg *config.Configuration, logger *logger.Logger) cache.Cache {
	return cache.NewInMemoryCache(cfg, logger)
}

func provideHandlers(
	logger *logger.Logger,
	catalogService service.CatalogService,
	quoteService service.QuoteService,
) api.Handlers {
	return api.Handlers{
		Health:  v1.NewHealthHandler(logger),
		Catalog: v1.NewCatalogHandler(catalogService, logger),
		Quote:   v1.NewQuoteHandler(quoteService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service, m *metrics.Metrics) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, logger, sentrySvc, m)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	catalogService service.CatalogService,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
		startCatalogRefresher(lc, catalogService, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			defer log.Sync()
			return srv.Shutdown(ctx)
		},
	})
}

// startCatalogRefresher warms every catalog on start and re-fetches them
// every catalog.refresh_interval. Failed refreshes keep the old snapshot.
func startCatalogRefresher(
	lc fx.Lifecycle,
	catalogService service.CatalogService,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	interval := cfg.Catalog.RefreshInterval
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	refresh := func() {
		ctx := types.SetRequestID(ctx, types.GenerateUUID())
		if _, err := catalogService.Refresh(ctx, dto.RefreshCatalogRequest{}); err != nil {
			log.WithContext(ctx).Errorw("catalog refresh failed", "error", err)
		}
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				refresh()
				if interval <= 0 {
					return
				}

				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						refresh()
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
