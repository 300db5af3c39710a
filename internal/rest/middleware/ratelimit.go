package middleware

import (
	"net/http"

	"github.com/flexprice/quoter/internal/config"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware applies one token bucket to every request it sees.
// A zero rate disables limiting.
func RateLimitMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if cfg.Server.RateLimit <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	burst := cfg.Server.RateBurst
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ierr.ErrorResponse{
				Success: false,
				Error: ierr.ErrorDetail{
					Display: "Too many requests, please retry shortly",
				},
			})
			return
		}
		c.Next()
	}
}
