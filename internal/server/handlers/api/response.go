package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MIMEJSON is sent without a charset parameter; JSON is UTF-8 by definition.
const MIMEJSON = "application/json"

// JSON writes v with the package codec and an exact `application/json`
// content type.
func JSON(ctx *gin.Context, status int, v any) {
	data, err := jsonMarshal(v)
	if err != nil {
		ctx.Error(err)
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	ctx.Data(status, MIMEJSON, data)
}

func AbortWithError(ctx *gin.Context, status int, code string, err error) {
	ctx.Abort()
	ctx.Error(err)
	JSON(ctx, status, APIError{
		Code:    code,
		Message: err.Error(),
	})
}
