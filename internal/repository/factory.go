package repository

import (
	"github.com/flexprice/quoter/internal/config"
	"github.com/flexprice/quoter/internal/domain/catalog"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/httpclient"
	"github.com/flexprice/quoter/internal/integration/stripe"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/repository/file"
	"github.com/flexprice/quoter/internal/repository/remote"
	"github.com/flexprice/quoter/internal/types"
)

// NewCatalogRepository returns the repository of the configured catalog source
func NewCatalogRepository(cfg *config.Configuration, logger *logger.Logger) (catalog.Repository, error) {
	switch cfg.Catalog.Source {
	case types.CatalogSourceFile:
		return file.NewCatalogRepository(cfg.Catalog.FilePath, logger), nil

	case types.CatalogSourceHTTP:
		client := httpclient.NewDefaultClient(httpclient.ClientConfig{
			Name:       "catalog",
			Timeout:    cfg.Catalog.HTTP.Timeout,
			MaxRetries: cfg.Catalog.HTTP.MaxRetries,
		}, logger)
		return remote.NewCatalogRepository(client, cfg.Catalog.HTTP.BaseURL, cfg.Catalog.HTTP.APIKey, logger), nil

	case types.CatalogSourceStripe:
		client, err := stripe.NewStripeClient(cfg.Catalog.Stripe.SecretKey)
		if err != nil {
			return nil, err
		}
		return stripe.NewCatalogRepository(client, cfg.Catalog.Stripe.Products, logger), nil

	default:
		return nil, ierr.NewErrorf("unsupported catalog source %q", cfg.Catalog.Source).
			WithHint("Catalog source must be file, http or stripe").
			Mark(ierr.ErrValidation)
	}
}
