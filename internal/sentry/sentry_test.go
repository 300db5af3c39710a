package sentry

import (
	"context"
	"errors"
	"testing"

	"github.com/flexprice/quoter/internal/config"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestService_Disabled(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Sentry.Enabled = false
	svc := NewSentryService(cfg, logger.NewNopLogger())

	assert.False(t, svc.Enabled())

	ctx := context.Background()
	spanCtx, finish := svc.StartCatalogSpan(ctx, "catalog.fetch.cf", map[string]interface{}{"module": "cf"})
	assert.Equal(t, ctx, spanCtx)
	assert.NotPanics(t, func() {
		finish(errors.New("boom"))
		svc.CaptureException(ctx, errors.New("boom"))
		svc.AddBreadcrumb("catalog", "refreshed", nil)
	})

	var nilSvc *Service
	assert.False(t, nilSvc.Enabled())
}
