package home

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MIMEHTML is the content type of the landing page.
const MIMEHTML = "text/html; charset=utf-8"

//go:embed index.html
var indexPage []byte

func Index(ctx *gin.Context) {
	ctx.Data(http.StatusOK, MIMEHTML, indexPage)
}
