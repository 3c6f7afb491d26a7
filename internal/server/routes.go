package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exemplo/appserver/internal/server/handlers/health"
	"github.com/exemplo/appserver/internal/server/handlers/home"
	"github.com/exemplo/appserver/internal/server/middlewares"
)

// quietPaths are polled by probes: not logged, compressed or throttled.
var quietPaths = []string{"/health"}

func SetupRoutes(cfg *Config, svc *Services) (http.Handler, error) {
	r := gin.New()

	// exact path matching only
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.HandleMethodNotAllowed = true

	if err := r.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	rateLimiter, err := middlewares.RateLimiter(cfg.RateLimit, quietPaths...)
	if err != nil {
		return nil, err
	}

	r.Use(
		middlewares.Logger(quietPaths...),
		gin.Recovery(),
		middlewares.SecureHeaders(cfg.HTTP.TLSEnabled()),
		rateLimiter,
	)

	// CORS and gzip only wrap registered routes, so NoRoute and NoMethod
	// answers stay plain and empty.
	public := r.Group("/", middlewares.CORS())
	public.OPTIONS("/", rejectMethod)
	public.OPTIONS("/health", rejectMethod)

	healthH := health.New(svc.Health)

	pages := public.Group("/", middlewares.GZIP(quietPaths...))
	pages.GET("/", home.Index)
	pages.GET("/health", healthH.Get)

	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	r.NoMethod(rejectMethod)

	return r.Handler(), nil
}

// rejectMethod answers 405. CORS preflights never reach it: the cors
// middleware aborts them with 204 first.
func rejectMethod(c *gin.Context) {
	c.Header("Allow", http.MethodGet)
	c.AbortWithStatus(http.StatusMethodNotAllowed)
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
