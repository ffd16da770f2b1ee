package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dev-rohith/pokemon-simulator/internal/auth"
	"github.com/dev-rohith/pokemon-simulator/internal/constants"
	"github.com/dev-rohith/pokemon-simulator/internal/logging"
	"github.com/dev-rohith/pokemon-simulator/internal/ratelimit"
)

const (
	ctxUserID   = "userID"
	ctxUsername = "username"
)

// AuthRequired validates the bearer token and injects the caller's identity
// into the request context.
func AuthRequired(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, constants.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyMessage: constants.ErrAuthRequired})
			return
		}
		claims, err := authSvc.ValidateToken(strings.TrimPrefix(header, constants.BearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyMessage: constants.ErrAuthRequired})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// currentUserID returns the authenticated user's id from the context, or 0.
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// RateLimit enforces the per-client fixed-window limit and sets the usual
// X-RateLimit headers on every response.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := limiter.Allow(c.ClientIP())

		c.Header(constants.HeaderRateLimitLimit, strconv.Itoa(r.Limit))
		c.Header(constants.HeaderRateLimitRemaining, strconv.Itoa(r.Remaining))
		c.Header(constants.HeaderRateLimitReset, strconv.FormatInt(r.ResetTime.Unix(), 10))

		if !r.Allowed {
			retryAfter := int(time.Until(r.ResetTime).Seconds()) + 1
			c.Header(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				constants.JSONKeyMessage: constants.ErrTooManyRequests,
				"retry_after":            retryAfter,
			})
			return
		}
		c.Next()
	}
}

// RequestLogger logs one structured line per request with a generated
// request id, which is also echoed back in the response headers.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header(constants.HeaderRequestID, requestID)

		start := time.Now()
		c.Next()

		logging.Info("request", logging.Fields{
			constants.LogFieldRequestID: requestID,
			"method":                    c.Request.Method,
			"path":                      c.Request.URL.Path,
			"status":                    c.Writer.Status(),
			"latency_ms":                time.Since(start).Milliseconds(),
			"client_ip":                 c.ClientIP(),
		})
	}
}
