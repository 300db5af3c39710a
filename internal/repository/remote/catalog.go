package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/flexprice/quoter/internal/domain/catalog"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/httpclient"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/types"
)

// HeaderAPIKey authenticates against the subscription service
const HeaderAPIKey = "X-Api-Key"

type catalogRepository struct {
	client  httpclient.Client
	baseURL string
	apiKey  string
	log     *logger.Logger
}

// NewCatalogRepository fetches catalogs from the subscription service at
// GET {baseURL}/catalog/{module}
func NewCatalogRepository(client httpclient.Client, baseURL, apiKey string, log *logger.Logger) catalog.Repository {
	return &catalogRepository{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
	}
}

func (r *catalogRepository) Fetch(ctx context.Context, module types.ModuleType) (*catalog.RawCatalog, error) {
	endpoint := fmt.Sprintf("%s/catalog/%s", r.baseURL, url.PathEscape(string(module)))

	headers := map[string]string{
		"Accept": "application/json",
	}
	if r.apiKey != "" {
		headers[HeaderAPIKey] = r.apiKey
	}
	if requestID := types.GetRequestID(ctx); requestID != "" {
		headers[types.HeaderRequestID] = requestID
	}

	r.log.WithContext(ctx).Debugw("fetching price catalog",
		"url", endpoint,
		"module", module,
	)

	resp, err := r.client.Send(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     endpoint,
		Headers: headers,
	})
	if err != nil {
		if httpErr, ok := httpclient.IsHTTPError(err); ok && httpErr.StatusCode == http.StatusNotFound {
			return nil, ierr.WithError(err).
				WithHintf("No price catalog for module %s", module).
				WithReportableDetails(map[string]any{
					"module": module,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Subscription service is unavailable").
			WithReportableDetails(map[string]any{
				"module": module,
			}).
			Mark(ierr.ErrCatalogUnavailable)
	}

	var raw catalog.RawCatalog
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Subscription service returned an invalid catalog").
			WithReportableDetails(map[string]any{
				"module": module,
			}).
			Mark(ierr.ErrCatalogUnavailable)
	}
	return &raw, nil
}
