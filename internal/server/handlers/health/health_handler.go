package health

import (
	"net/http"

	"github.com/exemplo/appserver/internal/server/handlers/api"
	"github.com/exemplo/appserver/internal/server/health"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	svc *health.HealthService
}

func New(svc *health.HealthService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func (h *HealthHandler) Get(ctx *gin.Context) {
	api.JSON(ctx, http.StatusOK, h.svc.GetHealth(ctx.Request.Context()))
}
