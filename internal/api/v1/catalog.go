package v1

import (
	"net/http"

	"github.com/flexprice/quoter/internal/api/dto"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/service"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

// @Summary List product prices
// @Description Lists the catalog prices of a module that apply to an edition
// @Tags Catalog
// @Produce json
// @Param filter query dto.GetProductPricesRequest true "Filter"
// @Success 200 {object} dto.ListProductPricesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 503 {object} ierr.ErrorResponse
// @Router /catalog/prices [get]
func (h *CatalogHandler) GetProductPrices(c *gin.Context) {
	var req dto.GetProductPricesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetProductPrices(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get sample tier
// @Description Returns the sample granularity and slider values of a usage dimension
// @Tags Catalog
// @Produce json
// @Param filter query dto.GetSampleTierRequest true "Filter"
// @Success 200 {object} dto.SampleTierResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /catalog/sample-tier [get]
func (h *CatalogHandler) GetSampleTier(c *gin.Context) {
	var req dto.GetSampleTierRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetSampleTier(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Refresh catalog
// @Description Re-fetches catalogs from the configured source. Modules that fail keep their previous snapshot.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.RefreshCatalogRequest false "Modules to refresh"
// @Success 200 {object} dto.RefreshCatalogResponse
// @Failure 503 {object} ierr.ErrorResponse
// @Router /catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *gin.Context) {
	var req dto.RefreshCatalogRequest
	// an empty body refreshes every module
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(ierr.WithError(err).
				WithHint("Invalid request format").
				Mark(ierr.ErrValidation))
			return
		}
	}

	resp, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	h.log.WithContext(c.Request.Context()).Infow("refreshed price catalogs", "catalogs", len(resp.Catalogs))
	c.JSON(http.StatusOK, resp)
}
