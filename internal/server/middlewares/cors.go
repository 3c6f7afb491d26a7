package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var corsConfig = cors.Config{
	AllowAllOrigins: true,
	AllowMethods:    []string{http.MethodGet},
	AllowHeaders:    []string{"Origin", "Accept", "Content-Type"},
	MaxAge:          12 * time.Hour,
}

// CORS lets browsers on other origins read the public endpoints.
func CORS() gin.HandlerFunc {
	return cors.New(corsConfig)
}
