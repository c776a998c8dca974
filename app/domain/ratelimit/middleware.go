package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"polydoc.ai/translate-api-gateway/app/interfaces/http/responses"
	"polydoc.ai/translate-api-gateway/app/utils/logger"
)

// Middleware enforces the given per-route limit. The remaining quota and
// reset time are set on every response, allowed or denied. A limiter error
// is logged and the request proceeds: availability of the primary function
// outweighs strict enforcement.
func Middleware(limiter Limiter, route string, limit int, window time.Duration) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		result, err := limiter.Check(reqCtx.Request.Context(), route, reqCtx.ClientIP(), limit, window)
		if err != nil {
			logger.GetLogger().Warnf("rate limiter failed open on %s: %v", route, err)
			reqCtx.Next()
			return
		}

		reqCtx.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		reqCtx.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			reqCtx.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{
				Code:  "e5a1f9c0-7d34-4f0b-9c3a-2b8d16f0a441",
				Error: "rate limit exceeded",
			})
			return
		}
		reqCtx.Next()
	}
}
