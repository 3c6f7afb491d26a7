package middlewares

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

var excludedExtensions = []string{
	".png", ".gif", ".jpeg", ".jpg", ".webp", ".ico",
	".zip", ".tar", ".gz",
	".woff", ".woff2",
}

func GZIP(excludedPaths ...string) gin.HandlerFunc {
	return gzip.Gzip(
		gzip.BestSpeed,
		gzip.WithExcludedPaths(excludedPaths),
		gzip.WithExcludedExtensions(excludedExtensions),
	)
}
