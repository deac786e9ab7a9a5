package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// RateLimit throttles an endpoint per client IP with the form limiter.
func (s *Server) RateLimit(endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Enabled() {
			c.Next()
			return
		}

		res := s.limiter.Allow(c.Request.Context(), endpoint, c.ClientIP())
		if res.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		}
		if !res.Allowed {
			if res.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds()+0.999)))
			}
			s.obsMetrics.RecordRateLimitDenied(c.Request.Context(), endpoint)
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

// NotInProduction hides maintenance routes from production deployments.
func (s *Server) NotInProduction() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.IsProduction() {
			AbortWithError(c, ErrNotFound)
			return
		}
		c.Next()
	}
}
