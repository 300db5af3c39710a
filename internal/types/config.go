package types

import (
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/samber/lo"
)

type RunMode string

const (
	// ModeLocal is the mode for running the API server locally
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running the API server in a deployed environment
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

// CatalogSource is where the price catalog snapshot is fetched from
type CatalogSource string

const (
	// CatalogSourceFile reads a yaml or json catalog from disk
	CatalogSourceFile CatalogSource = "file"
	// CatalogSourceHTTP fetches the catalog from the subscription service REST API
	CatalogSourceHTTP CatalogSource = "http"
	// CatalogSourceStripe lists prices of the configured Stripe products
	CatalogSourceStripe CatalogSource = "stripe"
)

func (s CatalogSource) String() string {
	return string(s)
}

func (s CatalogSource) Validate() error {
	allowed := []CatalogSource{
		CatalogSourceFile,
		CatalogSourceHTTP,
		CatalogSourceStripe,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid catalog source").
			WithHint("Invalid catalog source").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": s,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
