package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/exemplo/appserver/internal/server/handlers/api"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

var errRateLimited = errors.New("rate limit exceeded")

// RateLimiter throttles clients by IP using a rate in limiter notation,
// e.g. "100-S" or "1000-M". An empty rate disables limiting. Requests to the
// excluded paths are never counted.
func RateLimiter(formattedRate string, excludedPaths ...string) (gin.HandlerFunc, error) {
	if formattedRate == "" {
		return func(c *gin.Context) { c.Next() }, nil
	}

	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", formattedRate, err)
	}

	excluded := make(map[string]struct{}, len(excludedPaths))
	for _, p := range excludedPaths {
		excluded[p] = struct{}{}
	}

	limited := mgin.NewMiddleware(
		limiter.New(memory.NewStore(), rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			api.AbortWithError(c, http.StatusTooManyRequests, api.CodeRateLimited, errRateLimited)
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			api.AbortWithError(c, http.StatusInternalServerError, api.CodeInternalError, err)
		}),
	)

	return func(c *gin.Context) {
		if _, ok := excluded[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		limited(c)
	}, nil
}
