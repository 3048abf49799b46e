package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/infrastructure/ratelimit"
	"github.com/boomerhub/boomerhub/internal/shared/constants"
	apperrors "github.com/boomerhub/boomerhub/internal/shared/errors"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
	"github.com/boomerhub/boomerhub/internal/shared/utils"
)

// RateLimit applies limiter per resolved identity, falling back to the client IP
// when no identity is on the context. Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if identity, ok := IdentityFromContext(c); ok {
			key = identity.String()
		}

		decision, err := limiter.Consume(c.Request.Context(), key)
		if err != nil {
			var rlErr *ratelimit.RateLimitError
			if errors.As(err, &rlErr) {
				log.Infow("rate limit exceeded", "key", key, "retry_after", rlErr.RetryAfter.String())
				c.Header(constants.HeaderRetryAfter, strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
				utils.ErrorResponseWithError(c, apperrors.NewTooManyRequestsError(rlErr.Error()))
				c.Abort()
				return
			}

			log.Warnw("rate limiter unavailable, allowing request", "key", key, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Next()
	}
}
