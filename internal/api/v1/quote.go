package v1

import (
	"net/http"

	"github.com/flexprice/quoter/internal/api/dto"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/service"
	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	service service.QuoteService
	log     *logger.Logger
}

func NewQuoteHandler(service service.QuoteService, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{service: service, log: log}
}

// @Summary Create a quote
// @Description Prices a module subscription for an edition, payment frequency and quantities
// @Tags Quotes
// @Accept json
// @Produce json
// @Param quote body dto.CreateQuoteRequest true "Quote request"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 503 {object} ierr.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateQuote(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Compare editions
// @Description Quotes the same quantities for several editions side by side
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body dto.CompareEditionsRequest true "Comparison request"
// @Success 200 {object} dto.CompareEditionsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /quotes/compare [post]
func (h *QuoteHandler) CompareEditions(c *gin.Context) {
	var req dto.CompareEditionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CompareEditions(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Build subscription request
// @Description Prices the selection and returns the payload for the subscription service
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body dto.CreateSubscriptionRequest true "Subscription request"
// @Success 200 {object} dto.SubscriptionPayload
// @Failure 400 {object} ierr.ErrorResponse
// @Router /quotes/subscription [post]
func (h *QuoteHandler) BuildSubscriptionRequest(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.BuildSubscriptionRequest(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get renewal dates
// @Description Returns the next and previous renewal dates for a payment frequency
// @Tags Quotes
// @Produce json
// @Param filter query dto.GetRenewalRequest true "Filter"
// @Success 200 {object} quote.Renewal
// @Failure 400 {object} ierr.ErrorResponse
// @Router /renewals [get]
func (h *QuoteHandler) GetRenewalDates(c *gin.Context) {
	var req dto.GetRenewalRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetRenewalDates(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get recommendation
// @Description Picks the usage slider value that covers a recommended usage
// @Tags Quotes
// @Produce json
// @Param filter query dto.GetRecommendationRequest true "Filter"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /recommendations [get]
func (h *QuoteHandler) GetRecommendation(c *gin.Context) {
	var req dto.GetRecommendationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetRecommendation(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
